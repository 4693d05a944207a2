package service

import (
	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountService is plain CRUD. Balance mutation never happens here; only
// the delta primitive touches CurrentBalance after creation.
type AccountService struct {
	DB *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db}
}

// CreateAccountInput is the payload for a new account.
type CreateAccountInput struct {
	Name            string
	Type            string
	Currency        string
	StartingBalance decimal.Decimal
}

// UpdateAccountInput allows renaming and archiving only; balances and the
// starting snapshot are immutable through this path.
type UpdateAccountInput struct {
	Name       *string
	IsArchived *bool
}

// List returns accounts, optionally filtered by type and archived state.
func (s *AccountService) List(userID, accountType string, archived *bool) ([]models.Account, error) {
	query := s.DB.Where("user_id = ?", userID)
	if accountType != "" {
		query = query.Where("type = ?", accountType)
	}
	if archived != nil {
		query = query.Where("is_archived = ?", *archived)
	}

	var accounts []models.Account
	err := query.Order("created_at DESC").Find(&accounts).Error
	return accounts, err
}

func (s *AccountService) Get(accountID, userID string) (*models.Account, error) {
	return getOwnedAccount(s.DB, accountID, userID)
}

// Create stores a new account with CurrentBalance seeded from the starting
// snapshot.
func (s *AccountService) Create(userID string, data CreateAccountInput) (*models.Account, error) {
	switch data.Type {
	case models.AccountBank, models.AccountCash, models.AccountEwallet, models.AccountOther:
	default:
		return nil, util.NewValidationError("invalid account type")
	}

	account := models.Account{
		UserID:          userID,
		Name:            data.Name,
		Type:            data.Type,
		Currency:        data.Currency,
		StartingBalance: data.StartingBalance,
		CurrentBalance:  data.StartingBalance,
	}
	if err := s.DB.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) Update(accountID, userID string, data UpdateAccountInput) (*models.Account, error) {
	if _, err := getOwnedAccount(s.DB, accountID, userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.IsArchived != nil {
		updates["is_archived"] = *data.IsArchived
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&models.Account{}).
			Where("id = ?", accountID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return getOwnedAccount(s.DB, accountID, userID)
}
