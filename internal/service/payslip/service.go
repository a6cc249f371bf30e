package payslip

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
	"github.com/payfolio/payslip-backend-go/internal/domain/taxyear"
	"github.com/payfolio/payslip-backend-go/internal/pkg/database"
	"github.com/payfolio/payslip-backend-go/internal/pkg/validator"
	"github.com/payfolio/payslip-backend-go/internal/repository/postgresql"
	"github.com/payfolio/payslip-backend-go/internal/service/file"
	taxyearService "github.com/payfolio/payslip-backend-go/internal/service/taxyear"
)

type PayslipService interface {
	// Confirm takes the user-approved values through the verification
	// buffer and persists the result. Resubmitting the same month replaces
	// the stored payslip, and the affected tax year is recomputed in the
	// same transaction either way.
	Confirm(ctx context.Context, userID string, req payslip.ConfirmPayslipRequest) (payslip.PayslipResponse, error)

	Get(ctx context.Context, userID string, id string) (payslip.PayslipResponse, error)
	List(ctx context.Context, userID string, filter payslip.PayslipFilter) (payslip.ListPayslipsResponse, error)
	Delete(ctx context.Context, userID string, id string) error
}

type PayslipServiceImpl struct {
	db             *database.DB
	payslipRepo    payslip.PayslipRepository
	taxYearSvc     taxyearService.TaxYearService
	fileSvc        file.FileService
	earliestPeriod time.Time
}

func NewPayslipService(
	db *database.DB,
	payslipRepo payslip.PayslipRepository,
	taxYearSvc taxyearService.TaxYearService,
	fileSvc file.FileService,
	earliestPeriod time.Time,
) PayslipService {
	return &PayslipServiceImpl{
		db:             db,
		payslipRepo:    payslipRepo,
		taxYearSvc:     taxYearSvc,
		fileSvc:        fileSvc,
		earliestPeriod: earliestPeriod,
	}
}

// Confirm implements PayslipService.
func (s *PayslipServiceImpl) Confirm(ctx context.Context, userID string, req payslip.ConfirmPayslipRequest) (payslip.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	draft := payslip.NewDraft(s.earliestPeriod)

	var errs validator.ValidationErrors
	for name, raw := range req.FieldValues() {
		if err := draft.SetField(name, raw); err != nil {
			errs = appendValidation(errs, err, name)
		}
	}
	if err := draft.SetPeriod(req.Period); err != nil {
		errs = appendValidation(errs, err, "period")
	}
	if len(errs) > 0 {
		return payslip.PayslipResponse{}, errs
	}

	if req.DocumentRef != "" {
		draft.AttachDocument(req.DocumentRef, req.FileName)
	}

	record, err := draft.Confirm(userID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	var stored payslip.PayslipRecord
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		stored, err = s.payslipRepo.Upsert(txCtx, record)
		if err != nil {
			return err
		}

		return s.taxYearSvc.Recompute(txCtx, userID, taxyear.For(stored.Period))
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	// Promotion happens after commit: a storage hiccup here must not undo
	// the stored payslip, the document just stays at its temp path.
	if stored.DocumentPath != nil && strings.HasPrefix(*stored.DocumentPath, "payslips/tmp/") {
		promoted, err := s.fileSvc.PromotePayslipDocument(ctx, userID, *stored.DocumentPath, stored.ID)
		if err != nil {
			slog.Warn("failed to promote payslip document", "payslip_id", stored.ID, "error", err)
		} else if err := s.payslipRepo.UpdateDocument(ctx, stored.ID, userID, promoted); err != nil {
			slog.Warn("failed to record promoted document path", "payslip_id", stored.ID, "error", err)
		} else {
			stored.DocumentPath = &promoted
		}
	}

	return s.toResponse(ctx, stored), nil
}

// Get implements PayslipService.
func (s *PayslipServiceImpl) Get(ctx context.Context, userID string, id string) (payslip.PayslipResponse, error) {
	record, err := s.payslipRepo.GetByID(ctx, id, userID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	return s.toResponse(ctx, record), nil
}

// List implements PayslipService.
func (s *PayslipServiceImpl) List(ctx context.Context, userID string, filter payslip.PayslipFilter) (payslip.ListPayslipsResponse, error) {
	records, total, err := s.payslipRepo.ListByOwner(ctx, userID, filter)
	if err != nil {
		return payslip.ListPayslipsResponse{}, err
	}

	resp := payslip.ListPayslipsResponse{
		Payslips: make([]payslip.PayslipResponse, 0, len(records)),
		Total:    int(total),
	}
	for _, record := range records {
		resp.Payslips = append(resp.Payslips, s.toResponse(ctx, record))
	}
	return resp, nil
}

// Delete implements PayslipService. The tax year the payslip belonged to is
// recomputed in the same transaction so the aggregate never counts a
// removed month.
func (s *PayslipServiceImpl) Delete(ctx context.Context, userID string, id string) error {
	record, err := s.payslipRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.payslipRepo.Delete(txCtx, id, userID); err != nil {
			return err
		}
		return s.taxYearSvc.Recompute(txCtx, userID, taxyear.For(record.Period))
	})
	if err != nil {
		return err
	}

	if record.DocumentPath != nil {
		if err := s.fileSvc.DeleteFile(ctx, *record.DocumentPath); err != nil {
			slog.Warn("failed to delete payslip document", "payslip_id", id, "error", err)
		}
	}

	return nil
}

func (s *PayslipServiceImpl) toResponse(ctx context.Context, record payslip.PayslipRecord) payslip.PayslipResponse {
	resp := payslip.PayslipResponse{
		ID:                record.ID,
		Period:            record.Period.Format("2006-01"),
		GrossPay:          record.Fields.GrossPay,
		NetPay:            record.Fields.NetPay,
		Tax:               record.Fields.Tax,
		NationalInsurance: record.Fields.NationalInsurance,
		Pension:           record.Fields.Pension,
		OtherDeductions:   record.Fields.OtherDeductions,
		TotalDeductions:   record.Fields.TotalDeductions(),
		FileName:          record.FileName,
		Verified:          record.Verified,
		CreatedAt:         record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         record.UpdatedAt.Format(time.RFC3339),
	}

	if record.DocumentPath != nil {
		url, err := s.fileSvc.GetFileURL(ctx, *record.DocumentPath, 15*time.Minute)
		if err != nil {
			slog.Warn("failed to build document url", "payslip_id", record.ID, "error", err)
		} else {
			resp.DocumentURL = &url
		}
	}

	return resp
}

func appendValidation(errs validator.ValidationErrors, err error, field string) validator.ValidationErrors {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return append(errs, verrs...)
	}
	return append(errs, validator.ValidationError{Field: field, Message: err.Error()})
}
