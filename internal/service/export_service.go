package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/IPodymov/pd-projects-backend/internal/authz"
	"github.com/IPodymov/pd-projects-backend/internal/repository"
)

// ExportService produces spreadsheet exports of the projects visible
// to the actor.
type ExportService interface {
	ExportProjects(ctx context.Context, actorID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var exportHeaders = []string{"Title", "Status", "School", "Class", "Owner", "Members", "Created"}

func (s *exportService) ExportProjects(ctx context.Context, actorID string) (*bytes.Buffer, string, error) {
	actor, err := loadActor(ctx, s.repo.User, actorID)
	if err != nil {
		return nil, "", err
	}
	if !authz.Can(actor.Role, authz.ActionExport) {
		return nil, "", ErrForbidden
	}

	projects, err := s.repo.Project.ListVisible(ctx, authz.ProjectScopeFor(actor))
	if err != nil {
		s.logger.Error("export query failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Projects"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, p := range projects {
		school, err := s.repo.School.GetByID(ctx, p.SchoolID)
		if err != nil {
			return nil, "", err
		}
		schoolName := school.Name

		className := ""
		if p.SchoolClassID != nil {
			class, err := s.repo.SchoolClass.GetByID(ctx, *p.SchoolClassID)
			if err == nil {
				className = class.Name
			}
		}

		ownerName := ""
		if p.Owner != nil {
			ownerName = p.Owner.Name
		}

		values := []interface{}{
			p.Title,
			string(p.Status),
			schoolName,
			className,
			ownerName,
			len(p.Members),
			p.CreatedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("export write failed", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("projects_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}
