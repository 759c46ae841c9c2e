package models

// Collection names
const (
	CollectionUsers         = "users"
	CollectionPrivatePasses = "privatePasses"
	CollectionMarketPasses  = "marketPasses"
	CollectionAdminPasses   = "adminPasses"
	CollectionPassRecords   = "passRecords"
)
