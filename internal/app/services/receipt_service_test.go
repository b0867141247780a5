package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/filestorage"
)

type fakeReceiptStore struct {
	receipts    []*models.CapitationReceipt
	nextID      int64
	createCalls int
	createErr   error
}

func newFakeReceiptStore() *fakeReceiptStore {
	return &fakeReceiptStore{nextID: 1}
}

func (f *fakeReceiptStore) Create(ctx context.Context, receipt *models.CapitationReceipt) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	receipt.ID = f.nextID
	f.nextID++
	f.receipts = append(f.receipts, receipt)
	return nil
}

func (f *fakeReceiptStore) GetByID(ctx context.Context, id int64) (*models.CapitationReceipt, error) {
	for _, r := range f.receipts {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.ErrReceiptNotFound
}

func (f *fakeReceiptStore) GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.CapitationReceipt, error) {
	out := make([]*models.CapitationReceipt, 0, len(f.receipts))
	for _, r := range f.receipts {
		if r.InstitutionID == institutionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReceiptStore) GetAll(ctx context.Context) ([]*models.CapitationReceipt, error) {
	out := make([]*models.CapitationReceipt, 0, len(f.receipts))
	out = append(out, f.receipts...)
	return out, nil
}

func (f *fakeReceiptStore) Verify(ctx context.Context, id, verifiedBy int64) error {
	for _, r := range f.receipts {
		if r.ID == id && r.Status == models.ReceiptPending {
			r.Status = models.ReceiptVerified
			r.VerifiedBy = &verifiedBy
			return nil
		}
	}
	return apperrors.ErrReceiptNotFound
}

func (f *fakeReceiptStore) Delete(ctx context.Context, id int64) (string, error) {
	for i, r := range f.receipts {
		if r.ID == id {
			f.receipts = append(f.receipts[:i], f.receipts[i+1:]...)
			return r.FilePath, nil
		}
	}
	return "", apperrors.ErrReceiptNotFound
}

// fakeFileStorage records stored and deleted paths without touching disk.
type fakeFileStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeFileStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return f.SaveFileWithPath(fileHeader, "")
}

func (f *fakeFileStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	path := subPath + "/" + fileHeader.Filename
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeFileStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

func receiptFile(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

// uploadedFile builds a file header whose Open works, for tests that write
// through a real LocalStorage.
func uploadedFile(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(int64(body.Len()) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func validUpload() *dto.UploadReceiptRequest {
	return &dto.UploadReceiptRequest{
		ReceiptNumber: "cap/2024/003",
		Amount:        150000,
		ReceivedDate:  "2024-02-01",
		AcademicYear:  "2024",
		Term:          "TERM_1",
		Description:   "Term one capitation",
	}
}

func TestUploadReceipt(t *testing.T) {
	store := newFakeReceiptStore()
	storage := &fakeFileStorage{}
	svc := NewReceiptService(store, storage, 10<<20)

	receipt, err := svc.UploadReceipt(context.Background(), 1, 7, validUpload(), receiptFile("scan.pdf", 1024))

	require.NoError(t, err)
	assert.Equal(t, "CAP/2024/003", receipt.ReceiptNumber, "receipt number should be uppercased")
	assert.Equal(t, models.ReceiptPending, receipt.Status)
	assert.Equal(t, int64(7), receipt.UploadedBy)
	assert.Len(t, storage.saved, 1)
	assert.Empty(t, storage.deleted)
}

func TestUploadReceipt_ValidationFailureNeverWrites(t *testing.T) {
	tests := []struct {
		name    string
		req     *dto.UploadReceiptRequest
		file    *multipart.FileHeader
		wantErr error
	}{
		{
			name: "bad receipt number",
			req: func() *dto.UploadReceiptRequest {
				r := validUpload()
				r.ReceiptNumber = "receipt-3"
				return r
			}(),
			file:    receiptFile("scan.pdf", 1024),
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name: "non-positive amount",
			req: func() *dto.UploadReceiptRequest {
				r := validUpload()
				r.Amount = 0
				return r
			}(),
			file:    receiptFile("scan.pdf", 1024),
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "missing file",
			req:     validUpload(),
			file:    nil,
			wantErr: apperrors.ErrReceiptFileMissing,
		},
		{
			name:    "unsupported format",
			req:     validUpload(),
			file:    receiptFile("scan.docx", 1024),
			wantErr: apperrors.ErrUnsupportedFileFormat,
		},
		{
			name:    "file too large",
			req:     validUpload(),
			file:    receiptFile("scan.pdf", 11<<20),
			wantErr: apperrors.ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeReceiptStore()
			storage := &fakeFileStorage{}
			svc := NewReceiptService(store, storage, 10<<20)

			_, err := svc.UploadReceipt(context.Background(), 1, 7, tt.req, tt.file)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, store.createCalls)
			assert.Empty(t, storage.saved)
		})
	}
}

func TestUploadReceipt_CleansUpFileWhenInsertFails(t *testing.T) {
	store := newFakeReceiptStore()
	store.createErr = apperrors.ErrReceiptAlreadyExists
	storage := &fakeFileStorage{}
	svc := NewReceiptService(store, storage, 10<<20)

	_, err := svc.UploadReceipt(context.Background(), 1, 7, validUpload(), receiptFile("scan.pdf", 1024))

	require.ErrorIs(t, err, apperrors.ErrReceiptAlreadyExists)
	require.Len(t, storage.saved, 1)
	assert.Equal(t, storage.saved, storage.deleted, "stored file must be removed when the row is rejected")
}

func TestVerifyReceipt(t *testing.T) {
	store := newFakeReceiptStore()
	storage := &fakeFileStorage{}
	svc := NewReceiptService(store, storage, 10<<20)

	receipt, err := svc.UploadReceipt(context.Background(), 1, 7, validUpload(), receiptFile("scan.pdf", 1024))
	require.NoError(t, err)

	verified, err := svc.VerifyReceipt(context.Background(), receipt.ID, 99)

	require.NoError(t, err)
	assert.Equal(t, models.ReceiptVerified, verified.Status)
	require.NotNil(t, verified.VerifiedBy)
	assert.Equal(t, int64(99), *verified.VerifiedBy)

	// A second verification finds no pending row
	_, err = svc.VerifyReceipt(context.Background(), receipt.ID, 99)
	assert.True(t, errors.Is(err, apperrors.ErrReceiptNotFound))
}

func TestListReceipts_StatusFilter(t *testing.T) {
	store := newFakeReceiptStore()
	storage := &fakeFileStorage{}
	svc := NewReceiptService(store, storage, 10<<20)

	upload := func(number string) *models.CapitationReceipt {
		req := validUpload()
		req.ReceiptNumber = number
		r, err := svc.UploadReceipt(context.Background(), 1, 7, req, receiptFile("scan.pdf", 1024))
		require.NoError(t, err)
		return r
	}
	first := upload("CAP/2024/001")
	upload("CAP/2024/002")

	_, err := svc.VerifyReceipt(context.Background(), first.ID, 99)
	require.NoError(t, err)

	pending, _, err := svc.ListReceipts(context.Background(), 1, &dto.ReceiptFilterRequest{Status: "pending"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "CAP/2024/002", pending[0].ReceiptNumber)

	all, pagination, err := svc.ListReceipts(context.Background(), 1, &dto.ReceiptFilterRequest{Status: "all"}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, pagination.TotalItems)
}

func TestListCountyReceipts_SpansInstitutions(t *testing.T) {
	store := newFakeReceiptStore()
	storage := &fakeFileStorage{}
	svc := NewReceiptService(store, storage, 10<<20)

	upload := func(institutionID int64, number string) {
		req := validUpload()
		req.ReceiptNumber = number
		_, err := svc.UploadReceipt(context.Background(), institutionID, 7, req, receiptFile("scan.pdf", 1024))
		require.NoError(t, err)
	}
	upload(1, "CAP/2024/001")
	upload(2, "CAP/2024/002")
	upload(3, "CAP/2024/003")

	receipts, pagination, err := svc.ListCountyReceipts(context.Background(), &dto.ReceiptFilterRequest{Status: "pending"}, 1, 20)

	require.NoError(t, err)
	assert.Len(t, receipts, 3)
	assert.Equal(t, 3, pagination.TotalItems)
}

func TestGetReceiptByID_OtherInstitution(t *testing.T) {
	store := newFakeReceiptStore()
	storage := &fakeFileStorage{}
	svc := NewReceiptService(store, storage, 10<<20)

	receipt, err := svc.UploadReceipt(context.Background(), 1, 7, validUpload(), receiptFile("scan.pdf", 1024))
	require.NoError(t, err)

	_, err = svc.GetReceiptByID(context.Background(), 2, receipt.ID)
	assert.ErrorIs(t, err, apperrors.ErrReceiptNotFound)

	got, err := svc.GetReceiptByID(context.Background(), 1, receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt.ID, got.ID)
}

func TestDeleteReceipt_OtherInstitution(t *testing.T) {
	store := newFakeReceiptStore()
	storage := &fakeFileStorage{}
	svc := NewReceiptService(store, storage, 10<<20)

	receipt, err := svc.UploadReceipt(context.Background(), 1, 7, validUpload(), receiptFile("scan.pdf", 1024))
	require.NoError(t, err)

	err = svc.DeleteReceipt(context.Background(), 2, receipt.ID)

	assert.ErrorIs(t, err, apperrors.ErrReceiptNotFound)
	assert.Empty(t, storage.deleted)
	assert.Len(t, store.receipts, 1, "the other institution's receipt must survive")
}

func TestDeleteReceipt_RemovesStoredFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := filestorage.NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	store := newFakeReceiptStore()
	svc := NewReceiptService(store, storage, 10<<20)

	receipt, err := svc.UploadReceipt(context.Background(), 1, 7, validUpload(), uploadedFile(t, "scan.pdf", "receipt bytes"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "receipts"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "upload must land in the receipts subdirectory")

	require.NoError(t, svc.DeleteReceipt(context.Background(), 1, receipt.ID))

	_, err = os.Stat(filepath.Join(dir, "receipts", entries[0].Name()))
	assert.True(t, os.IsNotExist(err), "stored document must be removed from disk")
}
