package repository

import "gorm.io/gorm"

// TxRunner runs a function inside a database transaction. Repositories
// are rebound to the transaction handle through WithTx.
type TxRunner interface {
	Run(fn func(tx *gorm.DB) error) error
}

type GormTxRunner struct {
	db *gorm.DB
}

var _ TxRunner = (*GormTxRunner)(nil)

func NewGormTxRunner(db *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: db}
}

func (r *GormTxRunner) Run(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}
