package models

// Categories inferred at load time when the source column is blank.
const (
	CategoryCreditCard = "cartao_credito"
	CategoryEnergy     = "energia"
	CategoryOther      = "outros"
)

// Statuses recognized by the deterministic aggregator. The ledger stores
// status as free text, so matching is always case-insensitive.
const (
	StatusPaid    = "pago"
	StatusPending = "pendente"
)

// PendingStatuses are the status spellings that count as "not paid yet".
var PendingStatuses = []string{StatusPending, "em aberto", "aberto"}

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
)
