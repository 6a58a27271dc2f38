package inventory

import "github.com/jhoicas/stockalert-api/internal/domain/repository"

// PickPreferredSupplier elige el candidato con menor lead time; desempate por supplier id ascendente.
// Devuelve nil si no hay candidatos. No filtra por empresa: el llamador entrega candidatos ya filtrados.
func PickPreferredSupplier(candidates []repository.SupplierCandidate) *repository.SupplierCandidate {
	var best *repository.SupplierCandidate
	for i := range candidates {
		c := &candidates[i]
		if best == nil ||
			c.LeadTimeDays < best.LeadTimeDays ||
			(c.LeadTimeDays == best.LeadTimeDays && c.Supplier.ID < best.Supplier.ID) {
			best = c
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}
