package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/domain/plans"
	appconfig "github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// archiveBatchSize bounds how many results one sweep touches.
const archiveBatchSize = 100

// Archiver moves old analysis results into cold storage on a cron schedule.
type Archiver struct {
	resultRepository analyses.ResultRepository
	jobRepository    analyses.JobRepository
	planRepository   plans.PlanRepository
	objectStore      plans.ObjectStore
	worker           *appconfig.WorkerSettings
	s3               *appconfig.S3Settings
	logger           logger.Logger
	cron             *cron.Cron
}

// NewArchiver creates a new Archiver
func NewArchiver(
	resultRepository analyses.ResultRepository,
	jobRepository analyses.JobRepository,
	planRepository plans.PlanRepository,
	objectStore plans.ObjectStore,
	worker *appconfig.WorkerSettings,
	s3 *appconfig.S3Settings,
	logger logger.Logger,
) (*Archiver, error) {
	return &Archiver{
		resultRepository: resultRepository,
		jobRepository:    jobRepository,
		planRepository:   planRepository,
		objectStore:      objectStore,
		worker:           worker,
		s3:               s3,
		logger:           logger,
		cron:             cron.New(),
	}, nil
}

// Start schedules the sweep and launches the cron loop.
func (a *Archiver) Start(ctx context.Context) error {
	_, err := a.cron.AddFunc(a.worker.ArchiveSchedule, func() {
		if err := a.Sweep(ctx); err != nil {
			a.logger.Error("Archive sweep failed: ", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid archive schedule %q: %w", a.worker.ArchiveSchedule, err)
	}

	a.cron.Start()
	a.logger.Info("Archive sweep scheduled: ", a.worker.ArchiveSchedule)
	return nil
}

// Stop halts the cron loop, waiting for a running sweep to finish.
func (a *Archiver) Stop() {
	<-a.cron.Stop().Done()
}

// Sweep uploads results past the retention window to the archive prefix,
// copies each plan document into cold storage and flags the rows archived.
func (a *Archiver) Sweep(ctx context.Context) error {
	results, err := a.resultRepository.ListArchivable(ctx, a.worker.ArchiveAfterDays, archiveBatchSize)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	archived := 0
	archivedPlans := make(map[int]bool)
	for _, result := range results {
		payload, err := json.Marshal(result)
		if err != nil {
			a.logger.Error("Skipping unserializable result ", result.ID, ": ", err)
			continue
		}

		key := fmt.Sprintf("%s/results/%d.json", a.s3.ArchiveFolder, result.ID)
		if err := a.objectStore.Put(ctx, key, "application/json", payload); err != nil {
			// Leave the row unflagged so the next sweep retries it
			a.logger.Error("Failed to archive result ", result.ID, ": ", err)
			continue
		}

		if err := a.archivePlanDocument(ctx, result.AnalysisJobID, archivedPlans); err != nil {
			a.logger.Error("Failed to archive document for result ", result.ID, ": ", err)
			continue
		}

		if err := a.resultRepository.MarkArchived(ctx, result.ID); err != nil {
			a.logger.Error("Failed to flag result ", result.ID, " archived: ", err)
			continue
		}
		archived++
	}

	a.logger.Info("Archived ", archived, " of ", len(results), " eligible results")
	return nil
}

// archivePlanDocument copies the plan document behind a job into cold
// storage. A plan already handled in this sweep is skipped.
func (a *Archiver) archivePlanDocument(ctx context.Context, jobID int, archivedPlans map[int]bool) error {
	job, err := a.jobRepository.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if archivedPlans[job.PlanID] {
		return nil
	}

	plan, err := a.planRepository.GetByID(ctx, job.PlanID)
	if err != nil {
		return err
	}

	if _, err := a.objectStore.Archive(ctx, plan.FilePath); err != nil {
		return err
	}

	archivedPlans[job.PlanID] = true
	return nil
}
