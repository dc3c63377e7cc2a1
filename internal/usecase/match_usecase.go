package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"mentorhub/internal/domain/matching"
	"mentorhub/internal/domain/mentorship"
	"mentorhub/internal/pkg/metrics"
	"mentorhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrValidation       = errors.New("missing required fields")
	ErrInvalidType      = errors.New("invalid mentorship type")
	ErrDuplicatePairing = errors.New("this mentorship pairing already exists")
	ErrInternal         = errors.New("internal error")
)

const approvalNote = "Created via Mentor Match Algorithm"

// MatchSuggestion is the ephemeral result of one matcher run: the best
// mentor for a mentee, the score breakdown, and display fields for the
// admin screen. It is never persisted.
type MatchSuggestion struct {
	MentorID uuid.UUID
	MenteeID uuid.UUID
	Type     mentorship.Type

	MatchScore   int
	MatchReasons []string

	MentorName          string
	MentorEmail         string
	MentorChapter       string
	MentorInterests     []string
	MentorActiveMentees int

	MenteeName      string
	MenteeEmail     string
	MenteeChapter   string
	MenteeInterests []string
}

type ApproveMatchInput struct {
	MentorID string
	MenteeID string
	Type     string
}

type MatchUsecase interface {
	ComputeMatches(ctx context.Context, t mentorship.Type) ([]MatchSuggestion, error)
	ApproveMatch(ctx context.Context, in ApproveMatchInput) error
	ListPairings(ctx context.Context, t mentorship.Type) ([]repository.PairingRow, error)
}

// ViewCache abstracts the redis-backed dashboard cache. A nil cache is
// valid; the usecase just recomputes on every call.
type ViewCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateMentorshipViews(ctx context.Context) error
}

// ApprovalNotifier fans an approved pairing out to connected admin
// dashboards.
type ApprovalNotifier interface {
	PairingApproved(p mentorship.Pairing)
}

type Match struct {
	directory repository.DirectoryRepository
	store     repository.MentorshipRepository
	cache     ViewCache
	notifier  ApprovalNotifier
	logger    *zap.Logger
}

func NewMatchUsecase(
	directory repository.DirectoryRepository,
	store repository.MentorshipRepository,
	cache ViewCache,
	notifier ApprovalNotifier,
	logger *zap.Logger,
) *Match {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Match{directory: directory, store: store, cache: cache, notifier: notifier, logger: logger}
}

// ComputeMatches produces at most one suggestion per currently-unmatched
// mentee of the given type: the highest-scoring mentor wins, with ties
// going to the lower mentor id (the directory returns mentors in id order
// and the comparison is strict). The result is sorted by score descending.
//
// Every call recomputes from a fresh directory snapshot; suggestions are
// never cached, so eligibility can't go stale between runs.
func (u *Match) ComputeMatches(ctx context.Context, t mentorship.Type) ([]MatchSuggestion, error) {
	if _, ok := mentorship.ParseType(string(t)); !ok {
		return nil, ErrInvalidType
	}

	mentors, err := u.directory.FindMentors(ctx)
	if err != nil {
		u.logger.Error("load mentor pool failed", zap.Error(err))
		return nil, ErrInternal
	}
	mentees, err := u.directory.FindMentees(ctx, t.MenteeCapability(), t)
	if err != nil {
		u.logger.Error("load mentee pool failed", zap.Error(err))
		return nil, ErrInternal
	}

	suggestions := computeSuggestions(mentors, mentees, t)

	metrics.SuggestionsComputed.WithLabelValues(string(t)).Add(float64(len(suggestions)))
	u.logger.Debug("matches computed",
		zap.String("type", string(t)),
		zap.Int("mentors", len(mentors)),
		zap.Int("mentees", len(mentees)),
		zap.Int("suggestions", len(suggestions)),
	)

	return suggestions, nil
}

func computeSuggestions(mentors, mentees []mentorship.Person, t mentorship.Type) []MatchSuggestion {
	out := make([]MatchSuggestion, 0, len(mentees))
	if len(mentors) == 0 || len(mentees) == 0 {
		return out
	}

	mentorCands := make([]matching.Candidate, len(mentors))
	for i, m := range mentors {
		mentorCands[i] = toCandidate(m)
	}

	for _, mentee := range mentees {
		menteeCand := toCandidate(mentee)

		var best *mentorship.Person
		var bestRes matching.Result
		bestScore := -1

		for i := range mentors {
			// Disjoint pools in practice, but a person can hold both
			// MENTOR and a mentee capability.
			if mentors[i].ID == mentee.ID {
				continue
			}
			res := matching.Score(mentorCands[i], menteeCand)
			if res.Score > bestScore {
				best = &mentors[i]
				bestRes = res
				bestScore = res.Score
			}
		}
		if best == nil {
			continue
		}

		out = append(out, MatchSuggestion{
			MentorID:            best.ID,
			MenteeID:            mentee.ID,
			Type:                t,
			MatchScore:          bestRes.Score,
			MatchReasons:        bestRes.Reasons,
			MentorName:          best.Name,
			MentorEmail:         best.Email,
			MentorChapter:       best.ChapterName,
			MentorInterests:     best.Interests,
			MentorActiveMentees: best.ActiveMenteeCount,
			MenteeName:          mentee.Name,
			MenteeEmail:         mentee.Email,
			MenteeChapter:       mentee.ChapterName,
			MenteeInterests:     mentee.Interests,
		})
	}

	// Stable: equal scores keep mentee iteration (id) order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	return out
}

func toCandidate(p mentorship.Person) matching.Candidate {
	return matching.Candidate{
		ID:                p.ID,
		Name:              p.Name,
		ChapterID:         p.ChapterID,
		ChapterName:       p.ChapterName,
		Interests:         p.Interests,
		Bio:               p.Bio,
		ActiveMenteeCount: p.ActiveMenteeCount,
	}
}

// ApproveMatch persists a suggested pairing as ACTIVE. The duplicate check
// and the insert are one conditional statement in the store, so two
// concurrent approvals of the same triple cannot both land; the loser gets
// ErrDuplicatePairing with no mutation.
func (u *Match) ApproveMatch(ctx context.Context, in ApproveMatchInput) error {
	mentorRaw := strings.TrimSpace(in.MentorID)
	menteeRaw := strings.TrimSpace(in.MenteeID)
	typeRaw := strings.TrimSpace(in.Type)
	if mentorRaw == "" || menteeRaw == "" || typeRaw == "" {
		return ErrValidation
	}

	t, ok := mentorship.ParseType(typeRaw)
	if !ok {
		return ErrInvalidType
	}

	mentorID, err := uuid.Parse(mentorRaw)
	if err != nil {
		return ErrValidation
	}
	menteeID, err := uuid.Parse(menteeRaw)
	if err != nil {
		return ErrValidation
	}

	p, err := u.store.InsertActive(ctx, mentorship.Pairing{
		MentorID: mentorID,
		MenteeID: menteeID,
		Type:     t,
		Notes:    approvalNote,
	})
	if err != nil {
		if errors.Is(err, mentorship.ErrDuplicateActive) {
			metrics.DuplicateRejections.Inc()
			return ErrDuplicatePairing
		}
		u.logger.Error("approve pairing failed",
			zap.String("mentor_id", mentorID.String()),
			zap.String("mentee_id", menteeID.String()),
			zap.String("type", string(t)),
			zap.Error(err),
		)
		return ErrInternal
	}

	metrics.ApprovalsTotal.WithLabelValues(string(t)).Inc()
	u.logger.Info("mentorship pairing approved",
		zap.String("pairing_id", p.ID.String()),
		zap.String("mentor_id", mentorID.String()),
		zap.String("mentee_id", menteeID.String()),
		zap.String("type", string(t)),
	)

	if u.cache != nil {
		if err := u.cache.InvalidateMentorshipViews(ctx); err != nil {
			u.logger.Warn("mentorship view invalidation failed", zap.Error(err))
		}
	}
	if u.notifier != nil {
		u.notifier.PairingApproved(p)
	}

	return nil
}

// ListPairings serves the admin listing screen through the view cache;
// approvals invalidate it.
func (u *Match) ListPairings(ctx context.Context, t mentorship.Type) ([]repository.PairingRow, error) {
	if _, ok := mentorship.ParseType(string(t)); !ok {
		return nil, ErrInvalidType
	}

	key := "mentorships:view:" + string(t)
	if u.cache != nil {
		var cached []repository.PairingRow
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := u.store.ListByType(ctx, t)
	if err != nil {
		u.logger.Error("list pairings failed", zap.String("type", string(t)), zap.Error(err))
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, rows, 0); err != nil {
			u.logger.Warn("cache pairings view failed", zap.Error(err))
		}
	}

	return rows, nil
}
