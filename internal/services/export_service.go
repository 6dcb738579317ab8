package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/henley-workshops/survey-service/internal/models"
	"github.com/henley-workshops/survey-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// Fixed leading columns of every response export, before the per-question
// columns.
var responseLeadHeaders = []string{
	"Response ID",
	"Timestamp",
	"Participant Name",
	"Participant Email",
	"Organization",
	"Completion Time (seconds)",
}

var participantHeaders = []string{
	"ID",
	"Timestamp",
	"Name",
	"Organisation",
	"Role",
	"Focus Area",
	"AI Hope",
	"AI Stuck",
	"AI Tried",
	"Workshop Success",
	"Summary",
	"Track",
	"Readiness",
	"Themes",
}

// ExportService renders stored responses and participants as downloadable
// tables.
type ExportService interface {
	ResponsesCSV(ctx context.Context, surveyType *models.SurveyType) ([]byte, string, error)
	ResponsesExcel(ctx context.Context, surveyType *models.SurveyType) ([]byte, string, error)
	ParticipantsCSV(ctx context.Context) ([]byte, string, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// BuildResponseTable flattens a response collection into header and data
// rows. The question columns are the union of every question id seen, in
// first-seen order across records; the formatter performs no sorting,
// filtering, or deduplication of records.
func BuildResponseTable(responses []*models.SurveyResponse) ([]string, [][]string) {
	var questionIDs []string
	seen := make(map[string]bool)
	for _, response := range responses {
		for _, answer := range response.Answers {
			if !seen[answer.QuestionID] {
				seen[answer.QuestionID] = true
				questionIDs = append(questionIDs, answer.QuestionID)
			}
		}
	}

	headers := make([]string, 0, len(responseLeadHeaders)+len(questionIDs))
	headers = append(headers, responseLeadHeaders...)
	headers = append(headers, questionIDs...)

	rows := make([][]string, 0, len(responses))
	for _, response := range responses {
		row := make([]string, 0, len(headers))

		organization := ""
		if response.ParticipantOrganization != nil {
			organization = *response.ParticipantOrganization
		}
		completionTime := ""
		if response.CompletionTime != nil {
			completionTime = strconv.Itoa(*response.CompletionTime)
		}

		row = append(row,
			response.ID,
			response.Timestamp,
			response.ParticipantName,
			response.ParticipantEmail,
			organization,
			completionTime,
		)

		for _, questionID := range questionIDs {
			if answer, ok := response.AnswerFor(questionID); ok {
				row = append(row, answer.Value.DisplayString())
			} else {
				row = append(row, "")
			}
		}

		rows = append(rows, row)
	}

	return headers, rows
}

// WriteCSV renders a header plus data rows as RFC 4180 CSV: cells holding a
// comma, quote, or newline are quoted with internal quotes doubled, header
// and data cells alike.
func WriteCSV(headers []string, rows [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// writeExcel renders the same table as a single-sheet workbook.
func writeExcel(sheet string, headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheet)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write data cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename builds the download name for a response export, e.g.
// "pre-workshop-survey-responses-2026-09-01.csv".
func ExportFilename(surveyType *models.SurveyType, extension string) string {
	prefix := "all"
	if surveyType != nil {
		prefix = string(*surveyType)
	}
	return fmt.Sprintf("%s-survey-responses-%s.%s", prefix, time.Now().UTC().Format("2006-01-02"), extension)
}

func (s *exportService) ResponsesCSV(ctx context.Context, surveyType *models.SurveyType) ([]byte, string, error) {
	responses, err := s.repo.Responses().List(ctx, repositories.ResponseFilters{SurveyType: surveyType})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch responses for export: %w", err)
	}

	headers, rows := BuildResponseTable(responses)
	data, err := WriteCSV(headers, rows)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("exported responses to CSV", "rows", len(rows))
	return data, ExportFilename(surveyType, "csv"), nil
}

func (s *exportService) ResponsesExcel(ctx context.Context, surveyType *models.SurveyType) ([]byte, string, error) {
	responses, err := s.repo.Responses().List(ctx, repositories.ResponseFilters{SurveyType: surveyType})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch responses for export: %w", err)
	}

	headers, rows := BuildResponseTable(responses)
	data, err := writeExcel("Responses", headers, rows)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("exported responses to Excel", "rows", len(rows))
	return data, ExportFilename(surveyType, "xlsx"), nil
}

// BuildParticipantTable flattens intake submissions into the fixed dashboard
// columns.
func BuildParticipantTable(participants []*models.Participant) ([]string, [][]string) {
	rows := make([][]string, 0, len(participants))
	for _, p := range participants {
		themes := make([]string, 0, len(p.Themes))
		for _, theme := range p.Themes {
			themes = append(themes, string(theme))
		}

		rows = append(rows, []string{
			p.ID,
			p.Timestamp,
			p.Name,
			p.Organisation,
			p.Role,
			string(p.FocusArea),
			p.AIHope,
			p.AIStuck,
			p.AITried,
			p.WorkshopSuccess,
			p.Summary,
			string(p.Track),
			string(p.Readiness),
			strings.Join(themes, ", "),
		})
	}
	return participantHeaders, rows
}

func (s *exportService) ParticipantsCSV(ctx context.Context) ([]byte, string, error) {
	participants, err := s.repo.Participants().List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch participants for export: %w", err)
	}

	headers, rows := BuildParticipantTable(participants)
	data, err := WriteCSV(headers, rows)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("exported participants to CSV", "rows", len(rows))
	return data, fmt.Sprintf("participants-%s.csv", time.Now().UTC().Format("2006-01-02")), nil
}
