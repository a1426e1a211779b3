package photo

import (
	"Employee-Portal-Backend/domain"
	"Employee-Portal-Backend/entities"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	users map[string]*entities.User
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

type fakePhotoRepository struct {
	images    []*entities.ExtractedImage
	createErr error
}

func (f *fakePhotoRepository) CreateImage(_ context.Context, image *entities.ExtractedImage) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.images = append(f.images, image)
	return nil
}

func (f *fakePhotoRepository) GetImagesByUser(_ context.Context, userID string) ([]*entities.ExtractedImage, error) {
	var out []*entities.ExtractedImage
	for _, image := range f.images {
		if image.UserID.String() == userID {
			out = append(out, image)
		}
	}
	return out, nil
}

func (f *fakePhotoRepository) GetAllImages(_ context.Context) ([]*entities.ExtractedImage, error) {
	return f.images, nil
}

func (f *fakePhotoRepository) GetImagesOlderThan(_ context.Context, cutoff time.Time) ([]*entities.ExtractedImage, error) {
	var out []*entities.ExtractedImage
	for _, image := range f.images {
		if image.CreatedAt.Before(cutoff) {
			out = append(out, image)
		}
	}
	return out, nil
}

func (f *fakePhotoRepository) DeleteImage(_ context.Context, id string) error {
	for i, image := range f.images {
		if image.ID.String() == id {
			f.images = append(f.images[:i], f.images[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeBlobStore struct {
	objects    map[string][]byte
	uploads    int
	failUpload int // fail the nth upload (1-based), 0 disables
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) UploadFile(fileName string, file *multipart.FileHeader, folder string, _ ...string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(src); err != nil {
		return "", err
	}
	return f.UploadBytes(fileName, buf.Bytes(), folder, "")
}

func (f *fakeBlobStore) UploadBytes(fileName string, data []byte, folder string, _ string) (string, error) {
	f.uploads++
	if f.failUpload > 0 && f.uploads == f.failUpload {
		return "", errors.New("blob store unavailable")
	}
	key := folder + "/" + fileName
	f.objects[key] = data
	return key, nil
}

func (f *fakeBlobStore) DeleteFile(objectKey string) error {
	delete(f.objects, objectKey)
	return nil
}

func (f *fakeBlobStore) GetPublicLinkKey(objectKey string) string {
	return "https://blob.test/" + objectKey
}

func (f *fakeBlobStore) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://blob.test/")
}

func multipartFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func newTestService(t *testing.T) (PhotoService, *entities.User, *fakePhotoRepository, *fakeBlobStore) {
	t.Helper()

	owner := &entities.User{
		ID:       uuid.New(),
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Role:     domain.RoleUser,
	}
	userRepo := &fakeUserRepository{users: map[string]*entities.User{owner.ID.String(): owner}}
	photoRepo := &fakePhotoRepository{}
	blobs := newFakeBlobStore()

	svc := NewPhotoService(photoRepo, userRepo, NewArchiveUnwrapper(t.TempDir()), blobs)
	return svc, owner, photoRepo, blobs
}

func TestIngestPhotoArchiveFromRawXML(t *testing.T) {
	svc, owner, photoRepo, blobs := newTestService(t)

	jpeg := append([]byte{0xFF, 0xD8, 0xFF}, []byte("jpeg-body")...)
	doc := "<export>" +
		linkXML("koppeling_medewerker_fotos", "1001", base64.StdEncoding.EncodeToString(jpeg)) +
		linkXML("koppeling_medewerkers_fotos", "1002", "raw-payload") +
		"</export>"

	req := domain.UploadPhotoArchiveRequest{File: multipartFileHeader(t, "export.xml", []byte(doc))}
	res, err := svc.IngestPhotoArchive(context.Background(), req, owner.ID.String())
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, "1001", res[0].MedewerkerNumber)
	assert.Equal(t, "jpg", res[0].ImageType)
	assert.Equal(t, int64(len(jpeg)), res[0].ImageSize)
	assert.True(t, strings.HasPrefix(res[0].OriginalFilename, "jdoe_1001_"))

	// non-base64 payload falls back to its raw bytes, unknown magic -> jpg
	assert.Equal(t, "1002", res[1].MedewerkerNumber)
	assert.Equal(t, "jpg", res[1].ImageType)
	assert.Equal(t, int64(len("raw-payload")), res[1].ImageSize)

	require.Len(t, photoRepo.images, 2)
	require.Len(t, blobs.objects, 2)
	for _, image := range photoRepo.images {
		assert.Equal(t, owner.ID, image.UserID)
		assert.Equal(t, int64(len(blobs.objects[image.ObjectKey])), image.ImageSize)
	}
}

func TestIngestPhotoArchiveEmptyManifest(t *testing.T) {
	svc, owner, _, _ := newTestService(t)

	req := domain.UploadPhotoArchiveRequest{File: multipartFileHeader(t, "export.xml", []byte("<export/>"))}
	res, err := svc.IngestPhotoArchive(context.Background(), req, owner.ID.String())
	require.NoError(t, err)
	require.Empty(t, res)
}

func TestIngestPhotoArchiveMalformedXML(t *testing.T) {
	svc, owner, _, _ := newTestService(t)

	req := domain.UploadPhotoArchiveRequest{File: multipartFileHeader(t, "export.xml", []byte("<broken"))}
	_, err := svc.IngestPhotoArchive(context.Background(), req, owner.ID.String())
	require.ErrorIs(t, err, domain.ErrMalformedXML)
}

func TestIngestPhotoArchiveMissingFile(t *testing.T) {
	svc, owner, _, _ := newTestService(t)

	_, err := svc.IngestPhotoArchive(context.Background(), domain.UploadPhotoArchiveRequest{}, owner.ID.String())
	require.ErrorIs(t, err, domain.ErrNoFileProvided)
}

func TestIngestPhotoArchiveAbortsOnStorageFailure(t *testing.T) {
	svc, owner, photoRepo, blobs := newTestService(t)
	blobs.failUpload = 2

	doc := "<export>"
	for i := 1; i <= 3; i++ {
		doc += linkXML("koppeling_medewerker_fotos", fmt.Sprintf("%d", i), "payload")
	}
	doc += "</export>"

	req := domain.UploadPhotoArchiveRequest{File: multipartFileHeader(t, "export.xml", []byte(doc))}
	res, err := svc.IngestPhotoArchive(context.Background(), req, owner.ID.String())
	require.Error(t, err)

	// first image stays committed, batch stops at the failure
	require.Len(t, res, 1)
	require.Len(t, photoRepo.images, 1)
	assert.Equal(t, "1", photoRepo.images[0].MedewerkerNumber)
}

func TestGetUploadedPhotosScopedByRole(t *testing.T) {
	svc, owner, photoRepo, _ := newTestService(t)

	other := &entities.User{ID: uuid.New(), Username: "other"}
	photoRepo.images = []*entities.ExtractedImage{
		{ID: uuid.New(), UserID: owner.ID, User: owner, MedewerkerNumber: "1"},
		{ID: uuid.New(), UserID: other.ID, User: other, MedewerkerNumber: "2"},
	}

	own, err := svc.GetUploadedPhotos(context.Background(), owner.ID.String(), domain.RoleUser)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Empty(t, own[0].OwnerUsername)

	all, err := svc.GetUploadedPhotos(context.Background(), owner.ID.String(), domain.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "jdoe", all[0].OwnerUsername)
	assert.Equal(t, "other", all[1].OwnerUsername)
}

func TestCleanupOldImagesDeletesBlobAndRecord(t *testing.T) {
	svc, owner, photoRepo, blobs := newTestService(t)

	oldImage := &entities.ExtractedImage{
		ID:        uuid.New(),
		UserID:    owner.ID,
		ObjectKey: "fotos/old.jpg",
	}
	oldImage.CreatedAt = time.Now().Add(-72 * time.Hour)

	freshImage := &entities.ExtractedImage{
		ID:        uuid.New(),
		UserID:    owner.ID,
		ObjectKey: "fotos/fresh.jpg",
	}
	freshImage.CreatedAt = time.Now()

	photoRepo.images = []*entities.ExtractedImage{oldImage, freshImage}
	blobs.objects["fotos/old.jpg"] = []byte("old")
	blobs.objects["fotos/fresh.jpg"] = []byte("fresh")

	deleted, err := svc.CleanupOldImages(context.Background(), 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	require.Len(t, photoRepo.images, 1)
	assert.Equal(t, freshImage.ID, photoRepo.images[0].ID)
	_, oldBlobExists := blobs.objects["fotos/old.jpg"]
	assert.False(t, oldBlobExists)
}
