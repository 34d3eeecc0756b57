package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so the status set, history append and trail append of one
// lifecycle operation commit or roll back together.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// ShipmentRepo returns a ShipmentRepository bound to the current transaction.
	ShipmentRepo() ShipmentRepository

	// FreightOrderRepo returns a FreightOrderRepository bound to the current transaction.
	FreightOrderRepo() FreightOrderRepository

	// TrackingRepo returns a TrackingRepository bound to the current transaction.
	TrackingRepo() TrackingRepository

	// SettingsRepo returns a SettingsRepository bound to the current transaction.
	SettingsRepo() SettingsRepository
}
