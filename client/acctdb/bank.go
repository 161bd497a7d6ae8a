package acctdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"fluxacct/internal/pkg/model"
)

// AddBank inserts a bank. A non-empty parent must already exist; the parent
// lookup and the insert share one transaction.
func (c *Client) AddBank(ctx context.Context, name string, shares int64, parent string) error {
	if c == nil || c.DB == nil {
		return errNilClient
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: bank name is required", ErrInvalidArgument)
	}
	if shares <= 0 {
		return fmt.Errorf("%w: shares must be greater than 0, got %d", ErrInvalidArgument, shares)
	}

	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if parent != "" {
			var n int64
			if err := tx.Model(&model.Bank{}).Where("bank = ?", parent).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: %q", ErrParentNotFound, parent)
			}
		}
		b := model.Bank{Name: name, ParentBank: parent, Shares: shares}
		if err := tx.Create(&b).Error; err != nil {
			err = classify(err)
			if errors.Is(err, ErrDuplicateKey) {
				c.logger.Warn("bank already exists", "bank", name)
			}
			return err
		}
		c.logger.Debug("bank added", "bank", name, "parent", parent, "shares", shares)
		return nil
	})
}

// ViewBank returns the row for name, or ErrNotFound.
func (c *Client) ViewBank(ctx context.Context, name string) (*model.Bank, error) {
	if c == nil || c.DB == nil {
		return nil, errNilClient
	}
	var b model.Bank
	err := c.DB.WithContext(ctx).Where("bank = ?", name).Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("bank %q %w in bank_table", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// EditBank sets the shares of an existing bank. Editing a bank that does not
// exist changes nothing and is not an error.
func (c *Client) EditBank(ctx context.Context, name string, shares int64) error {
	if c == nil || c.DB == nil {
		return errNilClient
	}
	if shares <= 0 {
		return fmt.Errorf("%w: new shares amount must be greater than 0, got %d", ErrInvalidArgument, shares)
	}
	res := c.DB.WithContext(ctx).Model(&model.Bank{}).Where("bank = ?", name).Update("shares", shares)
	if res.Error != nil {
		return res.Error
	}
	c.logger.Debug("bank edited", "bank", name, "shares", shares, "rows", res.RowsAffected)
	return nil
}

// DeleteBank removes the bank row only. Sub-banks and associations that
// reference it are left in place.
func (c *Client) DeleteBank(ctx context.Context, name string) error {
	if c == nil || c.DB == nil {
		return errNilClient
	}
	res := c.DB.WithContext(ctx).Where("bank = ?", name).Delete(&model.Bank{})
	if res.Error != nil {
		return res.Error
	}
	c.logger.Debug("bank deleted", "bank", name, "rows", res.RowsAffected)
	return nil
}

// ListBanks returns every bank in insertion order.
func (c *Client) ListBanks(ctx context.Context) (model.Banks, error) {
	res, _, err := c.ListBanksPaged(ctx, 0, 0)
	return res, err
}

// ListBanksPaged returns one page of rows and the total row count. A zero
// limit returns every row.
func (c *Client) ListBanksPaged(ctx context.Context, offset, limit int) (model.Banks, int64, error) {
	if c == nil || c.DB == nil {
		return nil, 0, errNilClient
	}
	var res model.Banks
	total, err := c.page(ctx, &model.Bank{}, "bank_id", offset, limit, &res)
	if err != nil {
		return nil, 0, err
	}
	return res, total, nil
}
