package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fdalton/claimtrack/internal/app"
	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/fdalton/claimtrack/internal/kpi"
	"github.com/fdalton/claimtrack/internal/repository"
)

type reportService struct {
	estimates repository.EstimateRepo
	profiles  repository.EstimatorRepo
	blockers  repository.BlockerRepo
}

func NewReportService(
	estimates repository.EstimateRepo,
	profiles repository.EstimatorRepo,
	blockers repository.BlockerRepo,
) ReportService {
	return &reportService{estimates: estimates, profiles: profiles, blockers: blockers}
}

func (s *reportService) Scorecard(ctx context.Context, req app.ScorecardRequest) (*app.ScorecardView, error) {
	profile, err := s.resolveProfile(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}
	weekStart, weekEnd := weekWindow(req.WeekStart, now)

	all, err := s.estimates.ListByEstimator(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("loading estimates: %w", err)
	}

	var window []domain.ClaimEstimate
	var openCount, blockedCount int
	for _, e := range all {
		if !e.Status.IsTerminal() {
			openCount++
		}
		if e.IsBlocked() {
			blockedCount++
		}
		if inWindow(e.DateReceived, weekStart, weekEnd) {
			window = append(window, *e)
		}
	}

	metrics := kpi.Compute(window, now)
	view := &app.ScorecardView{
		EstimatorID:     profile.ID,
		DisplayName:     profile.DisplayName,
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
		Metrics:         metrics,
		Score:           kpi.OverallScore(metrics),
		Recommendations: kpi.Recommendations(profile.DisplayName, metrics),
		Targets:         compareTargets(profile, metrics),
		OpenCount:       openCount,
		BlockedCount:    blockedCount,
	}
	return view, nil
}

func (s *reportService) TeamReport(ctx context.Context, req app.TeamReportRequest) (*app.TeamReportView, error) {
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}
	weekStart, weekEnd := weekWindow(req.WeekStart, now)

	profiles, err := s.profiles.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading estimator profiles: %w", err)
	}

	names := make(map[string]string, len(profiles))
	perEstimator := make(map[string][]domain.ClaimEstimate, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.DisplayName
		entries, err := s.estimates.ListByEstimator(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("loading estimates for %s: %w", p.DisplayName, err)
		}
		var window []domain.ClaimEstimate
		for _, e := range entries {
			if inWindow(e.DateReceived, weekStart, weekEnd) {
				window = append(window, *e)
			}
		}
		perEstimator[p.ID] = window
	}

	ranked := kpi.Rank(perEstimator, now)
	members := make([]app.TeamMemberView, 0, len(ranked))
	for _, r := range ranked {
		members = append(members, app.TeamMemberView{
			EstimatorID: r.EstimatorID,
			DisplayName: names[r.EstimatorID],
			Metrics:     r.Metrics,
			Score:       r.Score,
		})
	}

	active, err := s.blockers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading active blockers: %w", err)
	}

	return &app.TeamReportView{
		WeekStart:      weekStart,
		WeekEnd:        weekEnd,
		Team:           kpi.ComputeTeam(perEstimator, now),
		Members:        members,
		ActiveBlockers: len(active),
	}, nil
}

func (s *reportService) resolveProfile(ctx context.Context, req app.ScorecardRequest) (*domain.EstimatorProfile, error) {
	switch {
	case req.EstimatorID != "":
		return s.profiles.GetByID(ctx, req.EstimatorID)
	case req.UserID != "":
		return s.profiles.GetByUserID(ctx, req.UserID)
	default:
		return nil, &domain.ValidationError{Field: "estimator", Value: "", Reason: "must identify an estimator"}
	}
}

func compareTargets(p *domain.EstimatorProfile, m kpi.WeeklyMetrics) []app.TargetComparison {
	var out []app.TargetComparison
	if p.TargetDollarsPerHour != nil {
		out = append(out, app.TargetComparison{
			Label:  "$/hr",
			Actual: m.DollarPerHour,
			Target: *p.TargetDollarsPerHour,
			Met:    m.DollarPerHour >= *p.TargetDollarsPerHour,
		})
	}
	if p.TargetEstimatesPerWeek != nil {
		out = append(out, app.TargetComparison{
			Label:  "estimates/week",
			Actual: float64(m.TotalEstimates),
			Target: float64(*p.TargetEstimatesPerWeek),
			Met:    m.TotalEstimates >= *p.TargetEstimatesPerWeek,
		})
	}
	if p.TargetMaxRevisionRate != nil {
		out = append(out, app.TargetComparison{
			Label:  "revision rate",
			Actual: m.RevisionRate,
			Target: *p.TargetMaxRevisionRate,
			Met:    m.RevisionRate <= *p.TargetMaxRevisionRate,
		})
	}
	if p.TargetMaxCycleDays != nil {
		out = append(out, app.TargetComparison{
			Label:  "avg days held",
			Actual: m.AvgDaysHeld,
			Target: *p.TargetMaxCycleDays,
			Met:    m.AvgDaysHeld <= *p.TargetMaxCycleDays,
		})
	}
	return out
}
