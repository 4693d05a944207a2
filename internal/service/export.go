package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportService renders a user's live transactions to CSV or XLSX.
type ExportService struct {
	DB *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{DB: db}
}

var exportHeader = []string{
	"Date", "Type", "Amount", "Currency", "Account", "From Account", "To Account", "Category", "Note",
}

func (s *ExportService) fetch(userID string, from, to *time.Time) ([]models.Transaction, error) {
	query := s.DB.Preload("Account").Preload("Category").
		Where("user_id = ? AND is_deleted = ?", userID, false)
	if from != nil {
		query = query.Where("occurred_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("occurred_at < ?", *to)
	}

	var txns []models.Transaction
	err := query.Order("occurred_at ASC").Find(&txns).Error
	return txns, err
}

func exportRow(s *ExportService, txn *models.Transaction) []string {
	accountName := ""
	if txn.Account != nil {
		accountName = txn.Account.Name
	}
	categoryName := ""
	if txn.Category != nil {
		categoryName = txn.Category.Name
	}
	fromName, toName := "", ""
	if txn.FromAccountID != nil {
		fromName = s.accountName(*txn.FromAccountID)
	}
	if txn.ToAccountID != nil {
		toName = s.accountName(*txn.ToAccountID)
	}

	return []string{
		txn.OccurredAt.Format("2006-01-02"),
		txn.Type,
		txn.Amount.String(),
		txn.Currency,
		accountName,
		fromName,
		toName,
		categoryName,
		txn.Note,
	}
}

func (s *ExportService) accountName(accountID string) string {
	var account models.Account
	if err := s.DB.Select("name").Where("id = ?", accountID).First(&account).Error; err != nil {
		return ""
	}
	return account.Name
}

// ExportCSV writes the user's transactions as UTF-8 CSV.
func (s *ExportService) ExportCSV(userID string, from, to *time.Time) ([]byte, error) {
	txns, err := s.fetch(userID, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for i := range txns {
		if err := w.Write(exportRow(s, &txns[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportXLSX writes the user's transactions as a single-sheet workbook.
func (s *ExportService) ExportXLSX(userID string, from, to *time.Time) ([]byte, error) {
	txns, err := s.fetch(userID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i := range txns {
		row := exportRow(s, &txns[i])
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
