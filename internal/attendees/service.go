package attendees

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"stampcard/internal/booths"
	"stampcard/internal/roster"
	"stampcard/internal/shared/constants"
	"stampcard/pkg/cache"
	"stampcard/pkg/logger"
)

var (
	ErrCardNotFound = errors.New("stamp card not found")
	ErrInvalidName  = errors.New("name is required")
	ErrUnknownTeam  = errors.New("please select a team from the list")
	ErrNotEligible  = errors.New("not enough stamps for the lucky draw yet")
)

const (
	StampStatusCollected      = "stamped"
	StampStatusAlreadyStamped = "already_stamped"

	// SubmissionQRSize is the edge length in pixels of the submission QR code
	SubmissionQRSize = 256
)

// TeamDirectory answers whether a team may be chosen at registration
type TeamDirectory interface {
	Contains(ctx context.Context, team string) (bool, error)
}

type Service interface {
	Register(ctx context.Context, req *RegisterCardRequest) (*CardResponse, error)
	GetCard(ctx context.Context, id uuid.UUID) (*CardResponse, error)
	CollectStamp(ctx context.Context, id uuid.UUID, req *CollectStampRequest) (*StampResponse, error)
	Submission(ctx context.Context, id uuid.UUID) (*SubmissionResponse, error)
	SubmissionQR(ctx context.Context, id uuid.UUID) ([]byte, error)
	Logout(ctx context.Context, id uuid.UUID) error
	// EligibleRoster renders every eligible card as roster text, one token per line
	EligibleRoster(ctx context.Context) (string, error)
}

type service struct {
	repo      Repository
	booths    booths.Service
	teams     TeamDirectory
	cache     cache.Service
	log       *logger.Logger
	threshold int
}

// NewService builds the card service. cacheSvc may be nil.
func NewService(repo Repository, boothSvc booths.Service, teams TeamDirectory, cacheSvc cache.Service, threshold int, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:      repo,
		booths:    boothSvc,
		teams:     teams,
		cache:     cacheSvc,
		log:       log,
		threshold: threshold,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterCardRequest) (*CardResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	ok, err := s.teams.Contains(ctx, req.Team)
	if err != nil {
		return nil, fmt.Errorf("failed to check team: %w", err)
	}
	if !ok {
		return nil, ErrUnknownTeam
	}

	card := &Card{Name: name, Team: req.Team}
	if err := s.repo.CreateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.log.LogCardRegistered(ctx, card.ID.String(), card.Team)
	resp := s.toResponse(card)
	return &resp, nil
}

func (s *service) GetCard(ctx context.Context, id uuid.UUID) (*CardResponse, error) {
	if s.cache != nil {
		var cached CardResponse
		if err := s.cache.Get(ctx, constants.BuildCardDetailKey(id.String()), &cached); err == nil {
			return &cached, nil
		}
	}

	card, err := s.repo.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(card)
	s.storeCard(ctx, resp)
	return &resp, nil
}

func (s *service) CollectStamp(ctx context.Context, id uuid.UUID, req *CollectStampRequest) (*StampResponse, error) {
	card, err := s.repo.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	booth, err := s.booths.Unlock(req.BoothID, req.Code)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.AddStamp(ctx, card.ID, booth.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to add stamp: %w", err)
	}

	status := StampStatusAlreadyStamped
	if created {
		status = StampStatusCollected
		card.Stamps = append(card.Stamps, Stamp{CardID: card.ID, BoothID: booth.ID})
		s.log.LogStampCollected(ctx, card.ID.String(), booth.ID, len(card.Stamps))
	}

	resp := s.toResponse(card)
	s.storeCard(ctx, resp)

	return &StampResponse{
		Status: status,
		Booth:  booth.ToResponse(),
		Card:   resp,
	}, nil
}

func (s *service) Submission(ctx context.Context, id uuid.UUID) (*SubmissionResponse, error) {
	token, err := s.submissionToken(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := encodeQR(token)
	if err != nil {
		return nil, err
	}

	return &SubmissionResponse{
		Token:  token,
		QRCode: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}, nil
}

func (s *service) SubmissionQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	token, err := s.submissionToken(ctx, id)
	if err != nil {
		return nil, err
	}
	return encodeQR(token)
}

func (s *service) Logout(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCard(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, constants.BuildCardDetailKey(id.String())); err != nil {
			s.log.Warn("failed to drop cached card", "card_id", id.String(), "error", err.Error())
		}
	}
	return nil
}

func (s *service) EligibleRoster(ctx context.Context) (string, error) {
	cards, err := s.repo.ListCards(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list cards: %w", err)
	}

	lines := make([]string, 0, len(cards))
	for i := range cards {
		rec := recordOf(&cards[i])
		if !rec.Eligible(s.threshold) {
			continue
		}
		token, err := rec.Token()
		if err != nil {
			return "", err
		}
		lines = append(lines, token)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *service) submissionToken(ctx context.Context, id uuid.UUID) (string, error) {
	card, err := s.repo.GetCard(ctx, id)
	if err != nil {
		return "", err
	}

	rec := recordOf(card)
	if !rec.Eligible(s.threshold) {
		return "", ErrNotEligible
	}
	return rec.Token()
}

func (s *service) storeCard(ctx context.Context, resp CardResponse) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, constants.BuildCardDetailKey(resp.ID), resp, constants.TTL_CARD_DETAIL); err != nil {
		s.log.Warn("failed to cache card", "card_id", resp.ID, "error", err.Error())
	}
}

func (s *service) toResponse(card *Card) CardResponse {
	stamps := len(card.Stamps)
	total := s.booths.Count()

	progress := 0.0
	if total > 0 {
		progress = math.Round(float64(stamps)/float64(total)*1000) / 10
	}

	return CardResponse{
		ID:            card.ID.String(),
		Name:          card.Name,
		Team:          card.Team,
		StampedBooths: card.BoothIDs(),
		Stamps:        stamps,
		TotalBooths:   total,
		Progress:      progress,
		MinStamps:     s.threshold,
		StampsNeeded:  max(s.threshold-stamps, 0),
		Eligible:      stamps >= s.threshold,
	}
}

func recordOf(card *Card) roster.Record {
	return roster.Record{Name: card.Name, Team: card.Team, Stamps: len(card.Stamps)}
}

func encodeQR(text string) ([]byte, error) {
	png, err := qrcode.Encode(text, qrcode.High, SubmissionQRSize)
	if err != nil {
		return nil, fmt.Errorf("encode submission qr: %w", err)
	}
	return png, nil
}
