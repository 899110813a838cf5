package service

import (
	"context"
	"errors"
	"sync"

	"QuickAI/internal/model"
	"QuickAI/internal/storage"
)

// fakeEntStore 内存版元数据存储
type fakeEntStore struct {
	mu    sync.Mutex
	plan  map[string]string
	usage map[string]int64
	email map[string]string

	getErr  error
	incrErr error
}

func newFakeEntStore() *fakeEntStore {
	return &fakeEntStore{
		plan:  make(map[string]string),
		usage: make(map[string]int64),
		email: make(map[string]string),
	}
}

func (f *fakeEntStore) Get(ctx context.Context, userID string) (*model.Entitlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	plan := f.plan[userID]
	if plan == "" {
		plan = model.PlanFree
	}
	if plan == model.PlanPremium {
		return &model.Entitlement{UserID: userID, Plan: plan}, nil
	}
	return &model.Entitlement{UserID: userID, Plan: plan, FreeUsage: f.usage[userID], Email: f.email[userID]}, nil
}

func (f *fakeEntStore) IncrUsage(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.usage[userID]++
	return f.usage[userID], nil
}

func (f *fakeEntStore) Upsert(ctx context.Context, userID, plan, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plan[userID] = plan
	if email != "" {
		f.email[userID] = email
	}
	return nil
}

func (f *fakeEntStore) usageOf(userID string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.usage[userID]
}

type fakeChat struct {
	resp  string
	err   error
	calls int
}

func (f *fakeChat) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.calls++
	return f.resp, f.err
}

type fakeImage struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeImage) TextToImage(ctx context.Context, prompt string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

type fakeUploader struct {
	publicID string
	url      string
	err      error
}

func (f *fakeUploader) UploadFile(ctx context.Context, path, transformation, format string) (*storage.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &storage.UploadResult{PublicID: f.publicID, SecureURL: f.url}, nil
}

func (f *fakeUploader) UploadBytes(ctx context.Context, data []byte, transformation, format string) (*storage.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &storage.UploadResult{PublicID: f.publicID, SecureURL: f.url}, nil
}

func (f *fakeUploader) DeliveryURL(publicID, transformation string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + publicID + "/" + transformation, nil
}

type fakeLedger struct {
	mu    sync.Mutex
	items []*model.Creation
	err   error
}

func (f *fakeLedger) Create(ctx context.Context, c *model.Creation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	c.ID = uint64(len(f.items) + 1)
	f.items = append(f.items, c)
	return nil
}

var errFake = errors.New("fake failure")

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeMailer) Enabled() bool { return true }

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}
