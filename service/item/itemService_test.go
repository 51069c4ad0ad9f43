package item

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/ds-skoropad/java-shareit/model"
)

type repoMock struct {
	createFn func(ctx context.Context, it *model.Item) error
	byIDFn   func(ctx context.Context, id int64) (*model.Item, error)
	updateFn func(ctx context.Context, it *model.Item) error
	byOwnFn  func(ctx context.Context, ownerID int64) ([]model.Item, error)
	searchFn func(ctx context.Context, text string) ([]model.Item, error)
}

var _ Repo = (*repoMock)(nil)

func (m *repoMock) Create(ctx context.Context, it *model.Item) error {
	if m.createFn == nil {
		it.ID = 1
		return nil
	}
	return m.createFn(ctx, it)
}

func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Item, error) {
	if m.byIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *repoMock) Update(ctx context.Context, it *model.Item) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, it)
}

func (m *repoMock) ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	if m.byOwnFn == nil {
		return nil, nil
	}
	return m.byOwnFn(ctx, ownerID)
}

func (m *repoMock) SearchAvailable(ctx context.Context, text string) ([]model.Item, error) {
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, text)
}

type usersMock struct{ known []int64 }

func (m *usersMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	for _, known := range m.known {
		if id == known {
			return &model.User{ID: id, Name: "user"}, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type requestsMock struct{ known []int64 }

func (m *requestsMock) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	for _, known := range m.known {
		if id == known {
			return &model.ItemRequest{ID: id}, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type commentsMock struct {
	insertFn  func(ctx context.Context, itemID, authorID int64, text string, created time.Time) (*Comment, error)
	byItemFn  func(ctx context.Context, itemID int64) ([]Comment, error)
	byItemsFn func(ctx context.Context, itemIDs []int64) ([]Comment, error)
}

func (m *commentsMock) Insert(ctx context.Context, itemID, authorID int64, text string, created time.Time) (*Comment, error) {
	if m.insertFn == nil {
		return &Comment{ID: 1, ItemID: itemID, Text: text, Created: created}, nil
	}
	return m.insertFn(ctx, itemID, authorID, text, created)
}

func (m *commentsMock) ByItem(ctx context.Context, itemID int64) ([]Comment, error) {
	if m.byItemFn == nil {
		return nil, nil
	}
	return m.byItemFn(ctx, itemID)
}

func (m *commentsMock) ByItems(ctx context.Context, itemIDs []int64) ([]Comment, error) {
	if m.byItemsFn == nil {
		return nil, nil
	}
	return m.byItemsFn(ctx, itemIDs)
}

type bookingsMock struct {
	finishedFn func(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
	lastFn     func(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	nextFn     func(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	approvedFn func(ctx context.Context, itemIDs []int64) ([]model.Booking, error)
}

func (m *bookingsMock) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	if m.finishedFn == nil {
		return false, nil
	}
	return m.finishedFn(ctx, bookerID, itemID, now)
}

func (m *bookingsMock) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	if m.lastFn == nil {
		return nil, nil
	}
	return m.lastFn(ctx, itemID, now)
}

func (m *bookingsMock) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	if m.nextFn == nil {
		return nil, nil
	}
	return m.nextFn(ctx, itemID, now)
}

func (m *bookingsMock) ApprovedByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error) {
	if m.approvedFn == nil {
		return nil, nil
	}
	return m.approvedFn(ctx, itemIDs)
}

func fixedItem(it model.Item) *repoMock {
	return &repoMock{byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
		if id != it.ID {
			return nil, pgx.ErrNoRows
		}
		cp := it
		return &cp, nil
	}}
}

func at(day, hour int) time.Time {
	return time.Date(2025, 1, day, hour, 0, 0, 0, time.UTC)
}

// --- Create / Update ---

func TestCreate_OwnerMissing(t *testing.T) {
	s := New(&repoMock{}, &usersMock{}, &requestsMock{}, &commentsMock{}, &bookingsMock{})

	_, err := s.Create(context.Background(), 404, model.Item{Name: "drill"})
	require.Equal(t, ErrNotFound, Code(err))
}

func TestCreate_RequestMissing(t *testing.T) {
	s := New(&repoMock{}, &usersMock{known: []int64{1}}, &requestsMock{}, &commentsMock{}, &bookingsMock{})

	reqID := int64(77)
	_, err := s.Create(context.Background(), 1, model.Item{Name: "drill", RequestID: &reqID})
	require.Equal(t, ErrNotFound, Code(err))
}

func TestCreate_Success(t *testing.T) {
	s := New(&repoMock{}, &usersMock{known: []int64{1}}, &requestsMock{known: []int64{77}}, &commentsMock{}, &bookingsMock{})

	reqID := int64(77)
	it, err := s.Create(context.Background(), 1, model.Item{Name: "drill", Description: "cordless", Available: true, RequestID: &reqID})
	require.NoError(t, err)
	require.Equal(t, int64(1), it.ID)
	require.Equal(t, int64(1), it.OwnerID)
}

func TestUpdate_OnlyOwner(t *testing.T) {
	m := fixedItem(model.Item{ID: 3, Name: "drill", OwnerID: 1, Available: true})
	s := New(m, &usersMock{known: []int64{1, 2}}, &requestsMock{}, &commentsMock{}, &bookingsMock{})

	_, err := s.Update(context.Background(), 2, 3, model.ItemPatch{})
	require.Equal(t, ErrForbidden, Code(err))
}

func TestUpdate_Partial(t *testing.T) {
	m := fixedItem(model.Item{ID: 3, Name: "drill", Description: "old", OwnerID: 1, Available: true})
	var saved *model.Item
	m.updateFn = func(ctx context.Context, it *model.Item) error {
		saved = it
		return nil
	}
	s := New(m, &usersMock{known: []int64{1}}, &requestsMock{}, &commentsMock{}, &bookingsMock{})

	avail := false
	it, err := s.Update(context.Background(), 1, 3, model.ItemPatch{Available: &avail})
	require.NoError(t, err)
	require.Equal(t, "drill", it.Name)
	require.Equal(t, "old", it.Description)
	require.False(t, it.Available)
	require.NotNil(t, saved)
}

// --- views ---

func TestGetByID_OwnerSeesCalendar(t *testing.T) {
	m := fixedItem(model.Item{ID: 3, OwnerID: 1, Available: true})
	b := &bookingsMock{
		lastFn: func(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
			return &model.Booking{ID: 10, ItemID: 3, Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour), Status: model.StatusApproved}, nil
		},
		nextFn: func(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
			return &model.Booking{ID: 11, ItemID: 3, Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour), Status: model.StatusApproved}, nil
		},
	}
	s := New(m, &usersMock{known: []int64{1, 2}}, &requestsMock{}, &commentsMock{}, b)

	view, err := s.GetByID(context.Background(), 1, 3)
	require.NoError(t, err)
	require.NotNil(t, view.LastBooking)
	require.Equal(t, int64(10), view.LastBooking.ID)
	require.NotNil(t, view.NextBooking)
	require.Equal(t, int64(11), view.NextBooking.ID)

	// Other users get the item without the calendar.
	view, err = s.GetByID(context.Background(), 2, 3)
	require.NoError(t, err)
	require.Nil(t, view.LastBooking)
	require.Nil(t, view.NextBooking)
	require.NotNil(t, view.Comments)
}

func TestLastAndNext(t *testing.T) {
	now := at(10, 12)
	bookings := []model.Booking{
		{ID: 1, Start: at(1, 0), End: at(2, 0)},
		{ID: 2, Start: at(5, 0), End: at(6, 0)}, // latest past
		{ID: 3, Start: at(20, 0), End: at(21, 0)},
		{ID: 4, Start: at(12, 0), End: at(13, 0)}, // earliest future
	}
	last, next := lastAndNext(bookings, now)
	require.Equal(t, int64(2), last.ID)
	require.Equal(t, int64(4), next.ID)

	last, next = lastAndNext(nil, now)
	require.Nil(t, last)
	require.Nil(t, next)
}

func TestSearch_BlankText(t *testing.T) {
	called := false
	m := &repoMock{searchFn: func(ctx context.Context, text string) ([]model.Item, error) {
		called = true
		return nil, nil
	}}
	s := New(m, &usersMock{}, &requestsMock{}, &commentsMock{}, &bookingsMock{})

	items, err := s.Search(context.Background(), "   ")
	require.NoError(t, err)
	require.Empty(t, items)
	require.False(t, called)
}

// --- comment gate ---

func TestCreateComment_NotEligible(t *testing.T) {
	m := fixedItem(model.Item{ID: 3, OwnerID: 1, Available: true})
	s := New(m, &usersMock{known: []int64{2}}, &requestsMock{}, &commentsMock{}, &bookingsMock{})

	_, err := s.CreateComment(context.Background(), 2, 3, "great drill")
	require.Equal(t, ErrNotEligible, Code(err))
}

func TestCreateComment_AfterFinishedBooking(t *testing.T) {
	m := fixedItem(model.Item{ID: 3, OwnerID: 1, Available: true})
	b := &bookingsMock{finishedFn: func(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
		return bookerID == 2 && itemID == 3, nil
	}}
	c := &commentsMock{insertFn: func(ctx context.Context, itemID, authorID int64, text string, created time.Time) (*Comment, error) {
		return &Comment{ID: 9, ItemID: itemID, Text: text, AuthorName: "renter", Created: created}, nil
	}}
	s := New(m, &usersMock{known: []int64{2}}, &requestsMock{}, c, b)

	got, err := s.CreateComment(context.Background(), 2, 3, "great drill")
	require.NoError(t, err)
	require.Equal(t, "great drill", got.Text)
	require.Equal(t, "renter", got.AuthorName)
}

func TestCreateComment_MissingAuthorOrItem(t *testing.T) {
	m := fixedItem(model.Item{ID: 3, OwnerID: 1, Available: true})
	s := New(m, &usersMock{known: []int64{2}}, &requestsMock{}, &commentsMock{}, &bookingsMock{})

	_, err := s.CreateComment(context.Background(), 404, 3, "text")
	require.Equal(t, ErrNotFound, Code(err))

	_, err = s.CreateComment(context.Background(), 2, 404, "text")
	require.Equal(t, ErrNotFound, Code(err))
}
