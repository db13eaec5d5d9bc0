package resumes

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	res := Resume{
		ID:               "resume-1",
		UserID:           "user-1",
		CandidateName:    "Jane Doe",
		Email:            "jane@example.com",
		ExtractedText:    "text",
		OriginalFileName: "resume.pdf",
		FileType:         "pdf",
		Source:           SourceUpload,
		FetchedAt:        time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			res.ID,
			res.UserID,
			res.CandidateName,
			res.Email,
			nil, // phone
			res.ExtractedText,
			res.OriginalFileName,
			res.FileType,
			res.Source,
			nil, // storage_key
			res.FetchedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), res); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "candidate_name", "email", "phone", "extracted_text",
		"original_file_name", "file_type", "source", "storage_key", "fetched_at",
	}).
		AddRow("resume-2", "user-1", "New Person", nil, nil, "newer", "b.pdf", "pdf", SourceUpload, nil, now).
		AddRow("resume-1", "user-1", "Old Person", "old@example.com", "555", "older", "a.pdf", "pdf", SourceUpload, "key-1", now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM resumes").
		WithArgs("user-1").
		WillReturnRows(rows)

	list, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != "resume-2" {
		t.Errorf("first = %q, want resume-2", list[0].ID)
	}
	if list[1].Email != "old@example.com" || list[1].StorageKey != "key-1" {
		t.Errorf("nullable fields not scanned: %+v", list[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := repo.DeleteByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("DeleteByUser: %v", err)
	}
	if deleted != 4 {
		t.Errorf("deleted = %d, want 4", deleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
