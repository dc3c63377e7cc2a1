package handler

import (
	"errors"

	"mentorhub/internal/delivery/http/dto"
	"mentorhub/internal/delivery/http/middleware"
	"mentorhub/internal/domain/mentorship"
	"mentorhub/internal/pkg/response"
	"mentorhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.ListPairings)
	r.Get("/matches", h.GetMatches)
	r.Post("/matches/approve", h.ApproveMatch)
}

// GetMatches returns one ranked suggestion per unmatched mentee of the
// requested type, best scores first.
func (h *MatchHandler) GetMatches(c fiber.Ctx) error {
	t, ok := mentorship.ParseType(c.Query("type"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unknown mentorship type", nil, nil)
	}

	suggestions, err := h.uc.ComputeMatches(c.Context(), t)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := make([]dto.MatchSuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, dto.MatchSuggestionResponse{
			MentorID:     s.MentorID,
			MenteeID:     s.MenteeID,
			Type:         string(s.Type),
			MatchScore:   s.MatchScore,
			MatchReasons: s.MatchReasons,
			Mentor: dto.MatchPersonResponse{
				Name:          s.MentorName,
				Email:         s.MentorEmail,
				Chapter:       s.MentorChapter,
				Interests:     s.MentorInterests,
				ActiveMentees: s.MentorActiveMentees,
			},
			Mentee: dto.MatchPersonResponse{
				Name:      s.MenteeName,
				Email:     s.MenteeEmail,
				Chapter:   s.MenteeChapter,
				Interests: s.MenteeInterests,
			},
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// ApproveMatch persists a suggestion as an ACTIVE pairing. Success carries
// no body; the admin screen re-fetches its views.
func (h *MatchHandler) ApproveMatch(c fiber.Ctx) error {
	var req dto.ApproveMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	err := h.uc.ApproveMatch(c.Context(), usecase.ApproveMatchInput{
		MentorID: req.MentorID,
		MenteeID: req.MenteeID,
		Type:     req.Type,
	})
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *MatchHandler) ListPairings(c fiber.Ctx) error {
	t, ok := mentorship.ParseType(c.Query("type"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unknown mentorship type", nil, nil)
	}

	rows, err := h.uc.ListPairings(c.Context(), t)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := make([]dto.PairingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PairingResponse{
			ID:          r.ID,
			MentorID:    r.MentorID,
			MentorName:  r.MentorName,
			MentorEmail: r.MentorEmail,
			MenteeID:    r.MenteeID,
			MenteeName:  r.MenteeName,
			MenteeEmail: r.MenteeEmail,
			Type:        string(r.Type),
			Status:      string(r.Status),
			Notes:       r.Notes,
			CreatedAt:   r.CreatedAt,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapMatchUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing required fields", nil, err)
	case errors.Is(err, usecase.ErrInvalidType):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unknown mentorship type", nil, err)
	case errors.Is(err, usecase.ErrDuplicatePairing):
		return middleware.NewAppError(fiber.StatusConflict, "This mentorship pairing already exists", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
