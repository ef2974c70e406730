// Package repository provides the relational store behind the hackathon core.
package repository

import (
	"context"

	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/internal/domain/scoring"
)

// Store is the persistence contract consumed by the application service.
//
// Uniqueness invariants (hackathon name, criterion name per hackathon,
// judge per hackathon/user, score per team/criterion/judge triple,
// submission per team/hackathon) are carried by unique indexes so that
// concurrent writers race safely: exactly one wins, the rest observe a
// duplicate error.
type Store interface {
	// Hackathons.
	CreateHackathon(ctx context.Context, h model.Hackathon) (model.Hackathon, error)
	GetHackathon(ctx context.Context, id int64) (model.Hackathon, error)
	ListHackathons(ctx context.Context) ([]model.Hackathon, error)
	UpdateHackathon(ctx context.Context, h model.Hackathon) (model.Hackathon, error)
	DeleteHackathon(ctx context.Context, id int64) error

	// Criteria.
	CreateCriterion(ctx context.Context, c model.Criterion) (model.Criterion, error)
	GetCriterion(ctx context.Context, id int64) (model.Criterion, error)
	GetHackathonCriterion(ctx context.Context, hackathonID, criterionID int64) (model.Criterion, error)
	ListCriteria(ctx context.Context, hackathonID int64) ([]model.Criterion, error)
	UpdateCriterion(ctx context.Context, c model.Criterion) (model.Criterion, error)
	DeleteCriterion(ctx context.Context, hackathonID, criterionID int64) error
	SumCriteriaWeights(ctx context.Context, hackathonID int64) (float64, error)

	// Judges.
	CreateJudge(ctx context.Context, hackathonID, userID int64) (model.Judge, error)
	GetJudge(ctx context.Context, hackathonID, userID int64) (model.Judge, error)
	ListJudges(ctx context.Context, hackathonID int64) ([]model.Judge, error)
	DeleteJudge(ctx context.Context, hackathonID, userID int64) error
	DeleteJudgesByUser(ctx context.Context, userID int64) (int64, error)

	// Scores.
	InsertScore(ctx context.Context, s model.Score) (model.Score, error)
	UpsertScore(ctx context.Context, s model.Score) (model.Score, error)
	ListTeamScores(ctx context.Context, teamID int64) ([]model.TeamScore, error)
	ListRatedScores(ctx context.Context, hackathonID int64) ([]scoring.RatedScore, error)

	// Final scores.
	UpsertFinalScore(ctx context.Context, fs model.FinalScore) error
	ListFinalScoresByTeams(ctx context.Context, teamIDs []int64) ([]model.FinalScore, error)

	// Documents and submissions (metadata only; bytes live in the object store).
	InsertDocument(ctx context.Context, d model.Document) (model.Document, error)
	ListDocuments(ctx context.Context, hackathonID int64) ([]model.Document, error)
	GetDocument(ctx context.Context, id int64) (model.Document, error)
	InsertSubmission(ctx context.Context, s model.Submission) (model.Submission, error)
	ListSubmissions(ctx context.Context, hackathonID int64) ([]model.Submission, error)

	Close() error
}
