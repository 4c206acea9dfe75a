package palet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

func NewPaletService(repo resource.RepositoryAPI[Palet], logger *slog.Logger) *resource.Service[Palet] {
	return resource.NewService(repo, PaletNoun, resource.Hooks[Palet]{
		Validate: (*Palet).Validate,
		BeforeCreate: func(_ context.Context, _ *auth.User, p *Palet) error {
			p.Code = NormalizeCode(p.Code)
			return nil
		},
		BeforeUpdate: func(_ context.Context, _ *auth.User, _, p *Palet) error {
			p.Code = NormalizeCode(p.Code)
			return nil
		},
	}, logger)
}

// NewStockService rejects stock lines pointing at a palet that does not exist.
func NewStockService(repo resource.RepositoryAPI[Stock], palets RepositoryAPI, logger *slog.Logger) *resource.Service[Stock] {
	checkPalet := func(ctx context.Context, s *Stock) error {
		if s.PaletID == 0 {
			return nil
		}
		ok, err := palets.Exists(ctx, s.PaletID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrPaletNotFound
		}
		return nil
	}

	return resource.NewService(repo, StockNoun, resource.Hooks[Stock]{
		Validate: (*Stock).Validate,
		BeforeCreate: func(ctx context.Context, _ *auth.User, s *Stock) error {
			return checkPalet(ctx, s)
		},
		BeforeUpdate: func(ctx context.Context, _ *auth.User, _, s *Stock) error {
			return checkPalet(ctx, s)
		},
	}, logger)
}

// Service covers the warehouse flows that are not plain CRUD.
type Service struct {
	repo   RepositoryAPI
	palets resource.RepositoryAPI[Palet]
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, palets resource.RepositoryAPI[Palet], logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, palets: palets, logger: logger}
}

func (s *Service) Scan(ctx context.Context, code string) (*ScanResult, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, internal.NewValidationFieldError("code", "Kode palet wajib diisi", internal.ErrCodeValidationFailed)
	}

	p, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	stocks, err := s.repo.StocksOf(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("palet scanned", "palet_id", p.ID, "code", code, "stock_lines", len(stocks))
	return &ScanResult{Palet: *p, Stocks: stocks}, nil
}

func (s *Service) Stocks(ctx context.Context, paletID int64) ([]Stock, error) {
	ok, err := s.repo.Exists(ctx, paletID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPaletNotFound
	}
	return s.repo.StocksOf(ctx, paletID)
}

// QRCode renders the palet code as a PNG label for printing.
func (s *Service) QRCode(ctx context.Context, paletID int64) (string, []byte, error) {
	p, err := s.palets.Get(ctx, paletID)
	if err != nil {
		return "", nil, err
	}

	png, err := qrcode.Encode(p.Code, qrcode.Medium, qrSize)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode qr code for palet %d: %w", paletID, err)
	}
	return fmt.Sprintf("palet-%s.png", p.Code), png, nil
}
