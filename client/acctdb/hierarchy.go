package acctdb

import (
	"context"

	"gorm.io/gorm"

	"fluxacct/internal/pkg/hierarchy"
	"fluxacct/internal/pkg/model"
)

// Hierarchy reads bank_table and association_table in one transaction and
// builds the bank tree from them.
func (c *Client) Hierarchy(ctx context.Context) (*hierarchy.Tree, error) {
	if c == nil || c.DB == nil {
		return nil, errNilClient
	}
	var (
		banks  model.Banks
		assocs model.Associations
	)
	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("bank_id").Find(&banks).Error; err != nil {
			return err
		}
		return tx.Order("assoc_id").Find(&assocs).Error
	})
	if err != nil {
		return nil, err
	}
	return hierarchy.Build(banks, assocs), nil
}

// PrintFullHierarchy returns the pipe-delimited hierarchy report.
func (c *Client) PrintFullHierarchy(ctx context.Context) (string, error) {
	t, err := c.Hierarchy(ctx)
	if err != nil {
		return "", err
	}
	return t.Render(), nil
}
