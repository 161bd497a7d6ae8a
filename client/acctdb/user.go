package acctdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fluxacct/internal/pkg/model"
)

// NewUser carries the values for one association row.
type NewUser struct {
	UserName   string
	Bank       string
	AdminLevel int64
	Shares     int64
	MaxJobs    int64
	MaxWallPJ  int64
}

// DefaultUser returns a NewUser with the stock limits: admin level 1, one
// share, one job, 60 wall minutes per job.
func DefaultUser(name, bank string) NewUser {
	return NewUser{
		UserName:   name,
		Bank:       bank,
		AdminLevel: 1,
		Shares:     1,
		MaxJobs:    1,
		MaxWallPJ:  60,
	}
}

// AddUser inserts an association of u.UserName with u.Bank. The bank is not
// required to exist.
func (c *Client) AddUser(ctx context.Context, u NewUser) error {
	if c == nil || c.DB == nil {
		return errNilClient
	}
	if strings.TrimSpace(u.UserName) == "" || strings.TrimSpace(u.Bank) == "" {
		return fmt.Errorf("%w: user name and bank are required", ErrInvalidArgument)
	}
	if u.Shares <= 0 {
		return fmt.Errorf("%w: shares must be greater than 0, got %d", ErrInvalidArgument, u.Shares)
	}

	now := c.now().Unix()
	a := model.Association{
		CreationTime: now,
		ModTime:      now,
		Deleted:      0,
		UserName:     u.UserName,
		AdminLevel:   u.AdminLevel,
		Bank:         u.Bank,
		Shares:       u.Shares,
		MaxJobs:      u.MaxJobs,
		MaxWallPJ:    u.MaxWallPJ,
	}
	if err := c.DB.WithContext(ctx).Create(&a).Error; err != nil {
		err = classify(err)
		if errors.Is(err, ErrDuplicateKey) {
			c.logger.Warn("association already exists", "user", u.UserName, "bank", u.Bank)
		}
		return err
	}
	c.logger.Debug("user added", "user", u.UserName, "bank", u.Bank)
	return nil
}

// ViewUser returns every association of name, one per bank.
func (c *Client) ViewUser(ctx context.Context, name string) (model.Associations, error) {
	if c == nil || c.DB == nil {
		return nil, errNilClient
	}
	var res model.Associations
	if err := c.DB.WithContext(ctx).Where("user_name = ?", name).Order("assoc_id").Find(&res).Error; err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("user %q %w in association_table", name, ErrNotFound)
	}
	return res, nil
}

// EditUser sets one column on every association of name and bumps mod_time.
// Editing a user that does not exist changes nothing and is not an error.
func (c *Client) EditUser(ctx context.Context, name string, field UserField, value string) error {
	if c == nil || c.DB == nil {
		return errNilClient
	}
	if _, err := ParseUserField(string(field)); err != nil {
		return err
	}

	var v any = value
	if field.integer() {
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidArgument, field, value)
		}
		v = n
	} else if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidArgument, field)
	}

	res := c.DB.WithContext(ctx).Model(&model.Association{}).
		Where("user_name = ?", name).
		Updates(map[string]any{string(field): v, "mod_time": c.now().Unix()})
	if res.Error != nil {
		return classify(res.Error)
	}
	c.logger.Debug("user edited", "user", name, "field", field, "rows", res.RowsAffected)
	return nil
}

// DeleteUser removes every association of name.
func (c *Client) DeleteUser(ctx context.Context, name string) error {
	if c == nil || c.DB == nil {
		return errNilClient
	}
	res := c.DB.WithContext(ctx).Where("user_name = ?", name).Delete(&model.Association{})
	if res.Error != nil {
		return res.Error
	}
	c.logger.Debug("user deleted", "user", name, "rows", res.RowsAffected)
	return nil
}

// ListUsers returns every association in insertion order.
func (c *Client) ListUsers(ctx context.Context) (model.Associations, error) {
	res, _, err := c.ListUsersPaged(ctx, 0, 0)
	return res, err
}

// ListUsersPaged returns one page of rows and the total row count. A zero
// limit returns every row.
func (c *Client) ListUsersPaged(ctx context.Context, offset, limit int) (model.Associations, int64, error) {
	if c == nil || c.DB == nil {
		return nil, 0, errNilClient
	}
	var res model.Associations
	total, err := c.page(ctx, &model.Association{}, "assoc_id", offset, limit, &res)
	if err != nil {
		return nil, 0, err
	}
	return res, total, nil
}
