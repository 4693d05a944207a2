package service

import (
	"fmt"
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringService manages schedule rules and executes them. Execution is
// triggered per request; a scheduler loop calling Run on due rules is an
// external concern.
type RecurringService struct {
	DB *gorm.DB
}

func NewRecurringService(db *gorm.DB) *RecurringService {
	return &RecurringService{DB: db}
}

// CreateRecurringInput is the payload for a new rule.
type CreateRecurringInput struct {
	Name          string
	Type          string
	Amount        decimal.Decimal
	Currency      string
	CategoryID    string
	AccountID     string
	ScheduleType  string
	ScheduleValue string
	NextRunAt     time.Time
	IsActive      bool
}

// UpdateRecurringInput carries a partial patch; nil keeps the old value.
type UpdateRecurringInput struct {
	Name          *string
	Type          *string
	Amount        *decimal.Decimal
	Currency      *string
	CategoryID    *string
	AccountID     *string
	ScheduleType  *string
	ScheduleValue *string
	NextRunAt     *time.Time
	IsActive      *bool
}

func (s *RecurringService) getOwnedRule(ruleID, userID string) (*models.RecurringRule, error) {
	var rule models.RecurringRule
	if err := s.DB.Where("id = ?", ruleID).First(&rule).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("Recurring rule not found")
		}
		return nil, err
	}
	if rule.UserID != userID {
		return nil, util.NewForbiddenError("You don't have access to this recurring rule")
	}
	return &rule, nil
}

// List returns the user's rules ordered by next run.
func (s *RecurringService) List(userID string) ([]models.RecurringRule, error) {
	var rules []models.RecurringRule
	err := s.DB.Preload("Category").Preload("Account").
		Where("user_id = ?", userID).
		Order("next_run_at ASC").
		Find(&rules).Error
	return rules, err
}

// Get returns one rule with its relations.
func (s *RecurringService) Get(ruleID, userID string) (*models.RecurringRule, error) {
	rule, err := s.getOwnedRule(ruleID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Preload("Category").Preload("Account").
		First(rule, "id = ?", rule.ID).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

// Runs returns the most recent executions of a rule.
func (s *RecurringService) Runs(ruleID, userID string, limit int) ([]models.RecurringRun, error) {
	if _, err := s.getOwnedRule(ruleID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}
	var runs []models.RecurringRun
	err := s.DB.Preload("Transaction").
		Where("recurring_rule_id = ?", ruleID).
		Order("executed_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}

// Create validates schedule and references, then stores the rule.
func (s *RecurringService) Create(userID string, data CreateRecurringInput) (*models.RecurringRule, error) {
	if data.Type != models.TransactionIncome && data.Type != models.TransactionExpense {
		return nil, util.NewValidationError("type must be INCOME or EXPENSE")
	}
	if data.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("amount must be greater than 0")
	}
	if !ValidateScheduleValue(data.ScheduleType, data.ScheduleValue) {
		return nil, util.NewValidationError(
			fmt.Sprintf("Invalid scheduleValue for scheduleType %s", data.ScheduleType))
	}

	category, err := getOwnedCategory(s.DB, data.CategoryID, userID)
	if err != nil {
		return nil, err
	}
	if category.Type != data.Type {
		return nil, util.NewValidationError("Category type must match recurring rule type")
	}
	if _, err := getOwnedAccount(s.DB, data.AccountID, userID); err != nil {
		return nil, err
	}

	rule := models.RecurringRule{
		UserID:        userID,
		Name:          data.Name,
		Type:          data.Type,
		Amount:        data.Amount,
		Currency:      data.Currency,
		CategoryID:    data.CategoryID,
		AccountID:     data.AccountID,
		ScheduleType:  data.ScheduleType,
		ScheduleValue: data.ScheduleValue,
		NextRunAt:     data.NextRunAt,
		IsActive:      data.IsActive,
	}
	if err := s.DB.Create(&rule).Error; err != nil {
		return nil, err
	}
	return s.Get(rule.ID, userID)
}

// Update patches a rule after revalidating schedule and references.
func (s *RecurringService) Update(ruleID, userID string, data UpdateRecurringInput) (*models.RecurringRule, error) {
	existing, err := s.getOwnedRule(ruleID, userID)
	if err != nil {
		return nil, err
	}

	scheduleType := existing.ScheduleType
	if data.ScheduleType != nil {
		scheduleType = *data.ScheduleType
	}
	scheduleValue := existing.ScheduleValue
	if data.ScheduleValue != nil {
		scheduleValue = *data.ScheduleValue
	}
	if !ValidateScheduleValue(scheduleType, scheduleValue) {
		return nil, util.NewValidationError(
			fmt.Sprintf("Invalid scheduleValue for scheduleType %s", scheduleType))
	}

	ruleType := existing.Type
	if data.Type != nil {
		if *data.Type != models.TransactionIncome && *data.Type != models.TransactionExpense {
			return nil, util.NewValidationError("type must be INCOME or EXPENSE")
		}
		ruleType = *data.Type
	}
	if data.CategoryID != nil {
		category, err := getOwnedCategory(s.DB, *data.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		if category.Type != ruleType {
			return nil, util.NewValidationError("Category type must match recurring rule type")
		}
	}
	if data.AccountID != nil {
		if _, err := getOwnedAccount(s.DB, *data.AccountID, userID); err != nil {
			return nil, err
		}
	}
	if data.Amount != nil && data.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("amount must be greater than 0")
	}

	updates := map[string]interface{}{
		"schedule_type":  scheduleType,
		"schedule_value": scheduleValue,
		"type":           ruleType,
	}
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.Amount != nil {
		updates["amount"] = *data.Amount
	}
	if data.Currency != nil {
		updates["currency"] = *data.Currency
	}
	if data.CategoryID != nil {
		updates["category_id"] = *data.CategoryID
	}
	if data.AccountID != nil {
		updates["account_id"] = *data.AccountID
	}
	if data.NextRunAt != nil {
		updates["next_run_at"] = *data.NextRunAt
	}
	if data.IsActive != nil {
		updates["is_active"] = *data.IsActive
	}

	if err := s.DB.Model(&models.RecurringRule{}).
		Where("id = ?", ruleID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ruleID, userID)
}

// Toggle flips a rule active or inactive.
func (s *RecurringService) Toggle(ruleID, userID string, isActive bool) (*models.RecurringRule, error) {
	if _, err := s.getOwnedRule(ruleID, userID); err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.RecurringRule{}).
		Where("id = ?", ruleID).Update("is_active", isActive).Error; err != nil {
		return nil, err
	}
	return s.Get(ruleID, userID)
}

// Delete removes a rule. Past runs and their transactions are kept.
func (s *RecurringService) Delete(ruleID, userID string) error {
	if _, err := s.getOwnedRule(ruleID, userID); err != nil {
		return err
	}
	return s.DB.Delete(&models.RecurringRule{}, "id = ?", ruleID).Error
}

// Run executes a due rule: atomically creates the templated transaction
// dated at NextRunAt, applies its balance effect, writes the audit run row
// and advances NextRunAt from the executed date. An inactive rule, or one
// whose next run is still in the future, is refused.
func (s *RecurringService) Run(ruleID, userID string) (*models.RecurringRule, error) {
	rule, err := s.getOwnedRule(ruleID, userID)
	if err != nil {
		return nil, err
	}

	if !rule.IsActive {
		return nil, util.NewValidationError("Recurring rule is not active")
	}
	now := time.Now()
	if rule.NextRunAt.After(now) {
		return nil, util.NewValidationError(
			fmt.Sprintf("Recurring rule is scheduled to run at %s", rule.NextRunAt.Format(time.RFC3339)))
	}

	// Advance from the scheduled date, not from now, so a late manual run
	// does not drift the schedule.
	executedDate := rule.NextRunAt

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		txn := models.Transaction{
			UserID:     rule.UserID,
			Type:       rule.Type,
			Amount:     rule.Amount,
			Currency:   rule.Currency,
			OccurredAt: rule.NextRunAt,
			AccountID:  &rule.AccountID,
			CategoryID: &rule.CategoryID,
			Note:       fmt.Sprintf("Recurring: %s", rule.Name),
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		if err := applyTransactionEffect(tx, &txn, false); err != nil {
			return err
		}

		run := models.RecurringRun{
			RecurringRuleID: rule.ID,
			TransactionID:   txn.ID,
			ExecutedAt:      now,
		}
		if err := tx.Create(&run).Error; err != nil {
			return err
		}

		nextRunAt, err := NextRunAt(rule.ScheduleType, rule.ScheduleValue, executedDate)
		if err != nil {
			return util.NewValidationError(err.Error())
		}
		return tx.Model(&models.RecurringRule{}).
			Where("id = ?", rule.ID).Update("next_run_at", nextRunAt).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ruleID, userID)
}
