package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/openhack/arena/internal/adapters/repository"
	"github.com/openhack/arena/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func openStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()
	s, err := repository.Open(filepath.Join(t.TempDir(), "arena.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedHackathon(ctx context.Context, s *repository.SQLiteStore, name string) model.Hackathon {
	h, _ := s.CreateHackathon(ctx, model.Hackathon{
		Name:                name,
		Description:         "test event",
		MaxParticipantCount: 100,
		MaxTeamMatesCount:   5,
		StartDate:           time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		ScoreStartDate:      time.Date(2026, 5, 3, 10, 0, 0, 0, time.UTC),
		EndDate:             time.Date(2026, 5, 5, 10, 0, 0, 0, time.UTC),
	})
	return h
}

func TestHackathons(t *testing.T) {
	ctx := context.Background()

	Convey("Given an open store", t, func() {
		s := openStore(t)

		Convey("When creating a hackathon", func() {
			h := seedHackathon(ctx, s, "spring-cup")
			So(h.ID, ShouldBeGreaterThan, 0)

			Convey("Then it round-trips through Get", func() {
				got, err := s.GetHackathon(ctx, h.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "spring-cup")
				So(got.StartDate.Equal(h.StartDate), ShouldBeTrue)
			})

			Convey("And a second hackathon with the same name is rejected", func() {
				_, err := s.CreateHackathon(ctx, model.Hackathon{
					Name:           "spring-cup",
					StartDate:      h.StartDate,
					ScoreStartDate: h.ScoreStartDate,
					EndDate:        h.EndDate,
				})
				So(errors.Is(err, repository.ErrDuplicateName), ShouldBeTrue)
			})

			Convey("And updating it persists new fields", func() {
				h.Description = "updated"
				updated, err := s.UpdateHackathon(ctx, h)
				So(err, ShouldBeNil)
				So(updated.Description, ShouldEqual, "updated")
			})

			Convey("And deleting it removes the row", func() {
				So(s.DeleteHackathon(ctx, h.ID), ShouldBeNil)
				_, err := s.GetHackathon(ctx, h.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When fetching a missing hackathon", func() {
			_, err := s.GetHackathon(ctx, 999)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestCriteria(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with one hackathon", t, func() {
		s := openStore(t)
		h := seedHackathon(ctx, s, "crit-cup")

		Convey("When adding criteria", func() {
			c1, err := s.CreateCriterion(ctx, model.Criterion{HackathonID: h.ID, Name: "design", Weight: 0.6})
			So(err, ShouldBeNil)
			_, err = s.CreateCriterion(ctx, model.Criterion{HackathonID: h.ID, Name: "code", Weight: 0.4})
			So(err, ShouldBeNil)

			Convey("Then the weight sum reflects stored rows", func() {
				sum, err := s.SumCriteriaWeights(ctx, h.ID)
				So(err, ShouldBeNil)
				So(sum, ShouldAlmostEqual, 1.0, 1e-9)
			})

			Convey("And a duplicate name in the same hackathon is rejected", func() {
				_, err := s.CreateCriterion(ctx, model.Criterion{HackathonID: h.ID, Name: "design", Weight: 0.1})
				So(errors.Is(err, repository.ErrDuplicateName), ShouldBeTrue)
			})

			Convey("And the same name in another hackathon is fine", func() {
				other := seedHackathon(ctx, s, "other-cup")
				_, err := s.CreateCriterion(ctx, model.Criterion{HackathonID: other.ID, Name: "design", Weight: 0.3})
				So(err, ShouldBeNil)
			})

			Convey("And deleting the hackathon cascades to criteria", func() {
				So(s.DeleteHackathon(ctx, h.ID), ShouldBeNil)
				_, err := s.GetCriterion(ctx, c1.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When no criteria exist", func() {
			sum, err := s.SumCriteriaWeights(ctx, h.ID)
			So(err, ShouldBeNil)
			So(sum, ShouldEqual, 0)
		})
	})
}

func TestJudgesAndScores(t *testing.T) {
	ctx := context.Background()

	Convey("Given a hackathon with a criterion and a judge", t, func() {
		s := openStore(t)
		h := seedHackathon(ctx, s, "judged-cup")
		c, _ := s.CreateCriterion(ctx, model.Criterion{HackathonID: h.ID, Name: "design", Weight: 0.6})
		j, err := s.CreateJudge(ctx, h.ID, 42)
		So(err, ShouldBeNil)

		Convey("Then the same judge pair cannot be added twice", func() {
			_, err := s.CreateJudge(ctx, h.ID, 42)
			So(errors.Is(err, repository.ErrDuplicate), ShouldBeTrue)
		})

		Convey("When inserting a score", func() {
			sc, err := s.InsertScore(ctx, model.Score{TeamID: 5, CriterionID: c.ID, JudgeID: j.ID, Value: 80})
			So(err, ShouldBeNil)
			So(sc.ID, ShouldBeGreaterThan, 0)

			Convey("Then the identical triple is rejected", func() {
				_, err := s.InsertScore(ctx, model.Score{TeamID: 5, CriterionID: c.ID, JudgeID: j.ID, Value: 90})
				So(errors.Is(err, repository.ErrDuplicateScore), ShouldBeTrue)
			})

			Convey("But upsert overwrites the value", func() {
				up, err := s.UpsertScore(ctx, model.Score{TeamID: 5, CriterionID: c.ID, JudgeID: j.ID, Value: 90})
				So(err, ShouldBeNil)
				So(up.ID, ShouldEqual, sc.ID)

				scores, err := s.ListTeamScores(ctx, 5)
				So(err, ShouldBeNil)
				So(scores, ShouldHaveLength, 1)
				So(scores[0].Value, ShouldEqual, 90)
			})

			Convey("And team scores come back ordered by judge then criterion", func() {
				c2, _ := s.CreateCriterion(ctx, model.Criterion{HackathonID: h.ID, Name: "code", Weight: 0.4})
				j2, _ := s.CreateJudge(ctx, h.ID, 7)
				_, _ = s.InsertScore(ctx, model.Score{TeamID: 5, CriterionID: c2.ID, JudgeID: j2.ID, Value: 50})
				_, _ = s.InsertScore(ctx, model.Score{TeamID: 5, CriterionID: c2.ID, JudgeID: j.ID, Value: 60})

				scores, err := s.ListTeamScores(ctx, 5)
				So(err, ShouldBeNil)
				So(scores, ShouldHaveLength, 3)
				for i := 1; i < len(scores); i++ {
					prev, cur := scores[i-1], scores[i]
					ordered := prev.JudgeID < cur.JudgeID ||
						(prev.JudgeID == cur.JudgeID && prev.CriterionID <= cur.CriterionID)
					So(ordered, ShouldBeTrue)
				}
				So(scores[0].JudgeUserID, ShouldEqual, 42)
			})

			Convey("And rated scores join the criterion weight", func() {
				rated, err := s.ListRatedScores(ctx, h.ID)
				So(err, ShouldBeNil)
				So(rated, ShouldHaveLength, 1)
				So(rated[0].Weight, ShouldAlmostEqual, 0.6, 1e-9)
				So(rated[0].Value, ShouldEqual, 80)
			})
		})

		Convey("When inserting an out-of-range value the CHECK fires", func() {
			_, err := s.InsertScore(ctx, model.Score{TeamID: 5, CriterionID: c.ID, JudgeID: j.ID, Value: 101})
			So(err, ShouldNotBeNil)
		})

		Convey("When the identity service reports the judge's user deleted", func() {
			n, err := s.DeleteJudgesByUser(ctx, 42)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)
			_, err = s.GetJudge(ctx, h.ID, 42)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestFinalScores(t *testing.T) {
	ctx := context.Background()

	Convey("Given an open store", t, func() {
		s := openStore(t)

		Convey("When upserting final scores twice for the same team", func() {
			So(s.UpsertFinalScore(ctx, model.FinalScore{TeamID: 1, Score: 64}), ShouldBeNil)
			So(s.UpsertFinalScore(ctx, model.FinalScore{TeamID: 1, Score: 64}), ShouldBeNil)
			So(s.UpsertFinalScore(ctx, model.FinalScore{TeamID: 2, Score: 80}), ShouldBeNil)

			Convey("Then one row per team exists, ordered by score descending", func() {
				rows, err := s.ListFinalScoresByTeams(ctx, []int64{1, 2, 3})
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 2)
				So(rows[0].TeamID, ShouldEqual, 2)
				So(rows[1].TeamID, ShouldEqual, 1)
			})
		})

		Convey("When listing with no team ids", func() {
			rows, err := s.ListFinalScoresByTeams(ctx, nil)
			So(err, ShouldBeNil)
			So(rows, ShouldBeEmpty)
		})
	})
}

func TestDocumentsAndSubmissions(t *testing.T) {
	ctx := context.Background()

	Convey("Given a hackathon", t, func() {
		s := openStore(t)
		h := seedHackathon(ctx, s, "files-cup")
		now := time.Now().UTC()

		Convey("When inserting a document", func() {
			d, err := s.InsertDocument(ctx, model.Document{
				HackathonID: h.ID, Name: "rules.pdf", StorageKey: "uploads/1/abc_rules.pdf",
				ContentType: "application/pdf", UploadedAt: now,
			})
			So(err, ShouldBeNil)

			got, err := s.GetDocument(ctx, d.ID)
			So(err, ShouldBeNil)
			So(got.StorageKey, ShouldEqual, "uploads/1/abc_rules.pdf")
		})

		Convey("When a team submits twice to the same hackathon", func() {
			_, err := s.InsertSubmission(ctx, model.Submission{
				HackathonID: h.ID, TeamID: 9, Name: "demo.pptx",
				StorageKey: "uploads/1/demo", ContentType: "application/vnd.ms-powerpoint", UploadedAt: now,
			})
			So(err, ShouldBeNil)

			_, err = s.InsertSubmission(ctx, model.Submission{
				HackathonID: h.ID, TeamID: 9, Name: "demo2.pptx",
				StorageKey: "uploads/1/demo2", ContentType: "application/vnd.ms-powerpoint", UploadedAt: now,
			})
			So(errors.Is(err, repository.ErrDuplicate), ShouldBeTrue)
		})
	})
}
