package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/xuri/excelize/v2"
)

// maxExportRows caps a single workbook export.
const maxExportRows = 50000

// journalService reads the append-only movement journal.
type journalService struct {
	BaseService
	movementRepo portsrepo.MovementReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(movementRepo portsrepo.MovementReader) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService:  newBaseService(),
		movementRepo: movementRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func toMovementFilter(params dto.ListMovementsParams) (domain.MovementFilter, error) {
	if err := validateInput(params); err != nil {
		return domain.MovementFilter{}, err
	}
	filter := domain.MovementFilter{
		ItemID:     params.ItemID,
		Department: params.Department,
		Limit:      params.Limit,
		NextToken:  params.NextToken,
	}
	for _, d := range []struct {
		raw string
		dst **time.Time
	}{{params.DateFrom, &filter.DateFrom}, {params.DateTo, &filter.DateTo}} {
		if d.raw == "" {
			continue
		}
		t, err := dto.ParseDate(d.raw)
		if err != nil {
			return domain.MovementFilter{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		*d.dst = &t
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return domain.MovementFilter{}, fmt.Errorf("%w: dateTo is before dateFrom", apperrors.ErrValidation)
	}
	return filter, nil
}

func (s *journalService) ListOutgoing(ctx context.Context, params dto.ListMovementsParams) (*dto.ListOutgoingMovementsResponse, error) {
	filter, err := toMovementFilter(params)
	if err != nil {
		return nil, err
	}
	rows, next, err := s.movementRepo.ListOutgoing(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.ToListOutgoingMovementsResponse(rows, next), nil
}

func (s *journalService) ListIncoming(ctx context.Context, params dto.ListMovementsParams) (*dto.ListIncomingMovementsResponse, error) {
	filter, err := toMovementFilter(params)
	if err != nil {
		return nil, err
	}
	rows, next, err := s.movementRepo.ListIncoming(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.ToListIncomingMovementsResponse(rows, next), nil
}

var outgoingExportHeader = []any{"Date", "Item Code", "Item Name", "Quantity", "Unit", "Receiver", "Department", "Request ID"}

// ExportOutgoing writes every matching outgoing line, newest first, as a single-sheet workbook.
func (s *journalService) ExportOutgoing(ctx context.Context, params dto.ListMovementsParams, w io.Writer) error {
	params.NextToken = nil
	filter, err := toMovementFilter(params)
	if err != nil {
		return err
	}
	filter.Limit = 500

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.LogError(ctx, cerr, "Failed to close workbook")
		}
	}()
	const sheet = "Outgoing"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &outgoingExportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	for row-2 < maxExportRows {
		page, next, err := s.movementRepo.ListOutgoing(ctx, filter)
		if err != nil {
			return err
		}
		for _, m := range page {
			requestID := ""
			if m.RequestID != nil {
				requestID = *m.RequestID
			}
			values := []any{m.MovementDate.Format(dto.DateLayout), m.ItemCode, m.ItemName, m.Quantity, m.UnitOfMeasure, m.Receiver, m.Department, requestID}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
			row++
		}
		if next == nil {
			break
		}
		filter.NextToken = next
	}

	s.LogInfo(ctx, "Outgoing journal exported", slog.Int("rows", row-2))
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
