package extraction

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/payfolio/payslip-backend-go/internal/domain/payslip"
	"github.com/payfolio/payslip-backend-go/internal/pkg/ocr"
	"github.com/payfolio/payslip-backend-go/internal/service/file"
)

type ExtractionService interface {
	// ProcessDocument stores the uploaded document in temp storage, runs
	// text recognition over it, and returns the best-effort field values.
	// Recognition failure is absorbed: the response comes back zeroed and
	// flagged for review, never as an error.
	ProcessDocument(ctx context.Context, userID string, document io.Reader, filename string) (payslip.ExtractResponse, error)
}

type ExtractionServiceImpl struct {
	recognizer ocr.Recognizer
	extractor  *Extractor
	fileSvc    file.FileService
}

func NewExtractionService(recognizer ocr.Recognizer, fileSvc file.FileService) ExtractionService {
	return &ExtractionServiceImpl{
		recognizer: recognizer,
		extractor:  NewExtractor(),
		fileSvc:    fileSvc,
	}
}

func (s *ExtractionServiceImpl) ProcessDocument(ctx context.Context, userID string, document io.Reader, filename string) (payslip.ExtractResponse, error) {
	buffer, err := io.ReadAll(document)
	if err != nil {
		return payslip.ExtractResponse{}, err
	}

	documentRef, err := s.fileSvc.UploadPayslipTemp(ctx, userID, bytes.NewReader(buffer), filename)
	if err != nil {
		return payslip.ExtractResponse{}, err
	}

	resp := payslip.ExtractResponse{
		DocumentRef: documentRef,
		FileName:    filename,
	}

	text, err := s.recognizer.Recognize(ctx, bytes.NewReader(buffer), filename)
	if err != nil {
		if !errors.Is(err, ocr.ErrUnavailable) {
			return payslip.ExtractResponse{}, err
		}
		slog.Warn("text recognition unavailable, returning zeroed fields", "user_id", userID, "error", err)
		resp.Period = time.Now().UTC().Format("2006-01")
		resp.NeedsReview = true
		return resp, nil
	}

	fields := s.extractor.ExtractFields(text)
	resp.GrossPay = fields.GrossPay
	resp.NetPay = fields.NetPay
	resp.Tax = fields.Tax
	resp.NationalInsurance = fields.NationalInsurance
	resp.Pension = fields.Pension
	resp.OtherDeductions = fields.OtherDeductions

	if period, ok := s.extractor.ExtractPeriod(text); ok {
		resp.Period = period.Format("2006-01")
	} else {
		// No date found: default to the current month, flagged so the
		// user corrects it during verification.
		resp.Period = time.Now().UTC().Format("2006-01")
		resp.NeedsReview = true
	}

	// Nothing recognized at all still goes to the user, just flagged.
	if fields.GrossPay.IsZero() && fields.NetPay.IsZero() {
		resp.NeedsReview = true
	}

	return resp, nil
}
