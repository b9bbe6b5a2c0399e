package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"homeservice/internal/domain"
	"homeservice/internal/notification"
	"homeservice/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) TransitionOwnedByWorker(ctx context.Context, bookingID, ownerUserID int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, ownerUserID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CancelOwnedByUser(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]repository.BookingDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BookingDetails), args.Error(1)
}

func (m *MockBookingRepository) ListByWorkerOwner(ctx context.Context, ownerUserID int64) ([]repository.BookingDetails, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BookingDetails), args.Error(1)
}

type MockWorkerReader struct {
	mock.Mock
}

func (m *MockWorkerReader) GetByID(ctx context.Context, id int64) (*domain.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

type MockServiceReader struct {
	mock.Mock
}

func (m *MockServiceReader) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// recordingNotifier collects dispatched messages for assertions.
type recordingNotifier struct {
	mu   sync.Mutex
	sent chan string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan string, 8)}
}

func (n *recordingNotifier) Notify(_ context.Context, to, subject, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent <- to + ": " + subject
	return nil
}

func userActor() domain.Actor   { return domain.Actor{ID: 10, Role: domain.RoleUser} }
func workerActor() domain.Actor { return domain.Actor{ID: 20, Role: domain.RoleWorker} }

func testWorker() *domain.Worker {
	ownerID := int64(20)
	return &domain.Worker{ID: 5, OwnerID: &ownerID, Name: "Bob the Plumber", IsActive: true}
}

func newTestService(bookings *MockBookingRepository, workers *MockWorkerReader, services *MockServiceReader, users *MockUserReader, notifier notification.Notifier) *Service {
	var d *notification.Dispatcher
	if notifier != nil {
		d = notification.NewDispatcher(notifier, zap.NewNop())
	}
	return NewService(bookings, workers, services, users, d)
}

func TestService_Create_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	workers := new(MockWorkerReader)
	services := new(MockServiceReader)
	users := new(MockUserReader)

	workers.On("GetByID", mock.Anything, int64(5)).Return(testWorker(), nil)
	services.On("GetByID", mock.Anything, int64(3)).Return(&domain.Service{ID: 3, WorkerID: 5, Name: "Plumbing", Price: 100.00}, nil)
	users.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10, Username: "alice", Email: "alice@example.com", Role: domain.RoleUser}, nil)
	users.On("GetByID", mock.Anything, int64(20)).Return(&domain.User{ID: 20, Username: "bob_plumber", Email: "bob@example.com", Role: domain.RoleWorker}, nil)
	bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	svc := newTestService(bookings, workers, services, users, nil)

	b, err := svc.Create(context.Background(), userActor(), 5, CreateBookingRequest{
		ServiceID: 3,
		Date:      "2024-01-01",
		Time:      "10:00",
		Notes:     "Kitchen sink",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, int64(10), b.UserID)
	assert.Equal(t, int64(5), b.WorkerID)
	assert.Equal(t, "alice", b.User.Username)
	assert.Equal(t, "Plumbing", b.Service.Name)
	bookings.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*domain.Booking"))
}

func TestService_Create_ForbiddenForWorkerActor(t *testing.T) {
	svc := newTestService(new(MockBookingRepository), new(MockWorkerReader), new(MockServiceReader), new(MockUserReader), nil)

	_, err := svc.Create(context.Background(), workerActor(), 5, CreateBookingRequest{ServiceID: 3, Date: "2024-01-01", Time: "10:00"})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Create_WorkerNotFound(t *testing.T) {
	workers := new(MockWorkerReader)
	workers.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(new(MockBookingRepository), workers, new(MockServiceReader), new(MockUserReader), nil)

	_, err := svc.Create(context.Background(), userActor(), 77, CreateBookingRequest{ServiceID: 3, Date: "2024-01-01", Time: "10:00"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Create_ServiceRequired(t *testing.T) {
	bookings := new(MockBookingRepository)
	workers := new(MockWorkerReader)
	workers.On("GetByID", mock.Anything, int64(5)).Return(testWorker(), nil)

	svc := newTestService(bookings, workers, new(MockServiceReader), new(MockUserReader), nil)

	_, err := svc.Create(context.Background(), userActor(), 5, CreateBookingRequest{Date: "2024-01-01", Time: "10:00"})

	assert.ErrorIs(t, err, ErrServiceRequired)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_ServiceOfOtherWorker(t *testing.T) {
	workers := new(MockWorkerReader)
	services := new(MockServiceReader)
	workers.On("GetByID", mock.Anything, int64(5)).Return(testWorker(), nil)
	services.On("GetByID", mock.Anything, int64(3)).Return(&domain.Service{ID: 3, WorkerID: 6}, nil)

	svc := newTestService(new(MockBookingRepository), workers, services, new(MockUserReader), nil)

	_, err := svc.Create(context.Background(), userActor(), 5, CreateBookingRequest{ServiceID: 3, Date: "2024-01-01", Time: "10:00"})

	assert.ErrorIs(t, err, ErrServiceMismatch)
}

func TestService_Create_InvalidDate(t *testing.T) {
	workers := new(MockWorkerReader)
	services := new(MockServiceReader)
	workers.On("GetByID", mock.Anything, int64(5)).Return(testWorker(), nil)
	services.On("GetByID", mock.Anything, int64(3)).Return(&domain.Service{ID: 3, WorkerID: 5}, nil)

	svc := newTestService(new(MockBookingRepository), workers, services, new(MockUserReader), nil)

	_, err := svc.Create(context.Background(), userActor(), 5, CreateBookingRequest{ServiceID: 3, Date: "01.01.2024", Time: "10:00"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), userActor(), 5, CreateBookingRequest{ServiceID: 3, Date: "2024-01-01", Time: "25:99"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_UpdateStatusByWorker_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	users := new(MockUserReader)
	notifier := newRecordingNotifier()

	bookings.On("TransitionOwnedByWorker", mock.Anything, int64(1), int64(20), domain.BookingAccepted).
		Return(&domain.Booking{ID: 1, UserID: 10, WorkerID: 5, Status: domain.BookingAccepted}, nil)
	users.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10, Email: "alice@example.com"}, nil)

	svc := newTestService(bookings, new(MockWorkerReader), new(MockServiceReader), users, notifier)

	b, err := svc.UpdateStatusByWorker(context.Background(), workerActor(), 1, "accepted")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, b.Status)

	select {
	case msg := <-notifier.sent:
		assert.Contains(t, msg, "alice@example.com")
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification to be dispatched")
	}
}

func TestService_UpdateStatusByWorker_ForbiddenForUserActor(t *testing.T) {
	svc := newTestService(new(MockBookingRepository), new(MockWorkerReader), new(MockServiceReader), new(MockUserReader), nil)

	_, err := svc.UpdateStatusByWorker(context.Background(), userActor(), 1, "accepted")

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_UpdateStatusByWorker_RejectsNonWorkerStatuses(t *testing.T) {
	svc := newTestService(new(MockBookingRepository), new(MockWorkerReader), new(MockServiceReader), new(MockUserReader), nil)

	for _, raw := range []string{"pending", "confirmed", "bogus", ""} {
		_, err := svc.UpdateStatusByWorker(context.Background(), workerActor(), 1, raw)
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q", raw)
	}
}

func TestService_UpdateStatusByWorker_NotFoundForForeignBooking(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("TransitionOwnedByWorker", mock.Anything, int64(1), int64(20), domain.BookingAccepted).
		Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(bookings, new(MockWorkerReader), new(MockServiceReader), new(MockUserReader), nil)

	_, err := svc.UpdateStatusByWorker(context.Background(), workerActor(), 1, "accepted")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateStatusByWorker_TerminalBooking(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("TransitionOwnedByWorker", mock.Anything, int64(1), int64(20), domain.BookingCompleted).
		Return(nil, repository.ErrTerminalStatus)

	svc := newTestService(bookings, new(MockWorkerReader), new(MockServiceReader), new(MockUserReader), nil)

	_, err := svc.UpdateStatusByWorker(context.Background(), workerActor(), 1, "completed")

	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestService_Cancel_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	workers := new(MockWorkerReader)
	users := new(MockUserReader)
	notifier := newRecordingNotifier()

	bookings.On("CancelOwnedByUser", mock.Anything, int64(1), int64(10)).
		Return(&domain.Booking{ID: 1, UserID: 10, WorkerID: 5, Status: domain.BookingCanceled}, nil)
	workers.On("GetByID", mock.Anything, int64(5)).Return(testWorker(), nil)
	users.On("GetByID", mock.Anything, int64(20)).Return(&domain.User{ID: 20, Email: "bob@example.com"}, nil)

	svc := newTestService(bookings, workers, new(MockServiceReader), users, notifier)

	b, err := svc.Cancel(context.Background(), userActor(), 1)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCanceled, b.Status)

	select {
	case msg := <-notifier.sent:
		assert.Contains(t, msg, "bob@example.com")
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification to be dispatched")
	}
}

func TestService_Cancel_TerminalBooking(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("CancelOwnedByUser", mock.Anything, int64(1), int64(10)).
		Return(nil, repository.ErrTerminalStatus)

	svc := newTestService(bookings, new(MockWorkerReader), new(MockServiceReader), new(MockUserReader), nil)

	_, err := svc.Cancel(context.Background(), userActor(), 1)

	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestService_Cancel_ForbiddenForWorkerActor(t *testing.T) {
	svc := newTestService(new(MockBookingRepository), new(MockWorkerReader), new(MockServiceReader), new(MockUserReader), nil)

	_, err := svc.Cancel(context.Background(), workerActor(), 1)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Lists_AreRoleGated(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("ListByUser", mock.Anything, int64(10)).Return([]repository.BookingDetails{{ID: 2}, {ID: 1}}, nil)
	bookings.On("ListByWorkerOwner", mock.Anything, int64(20)).Return([]repository.BookingDetails{{ID: 3}}, nil)

	svc := newTestService(bookings, new(MockWorkerReader), new(MockServiceReader), new(MockUserReader), nil)

	items, err := svc.ListForUser(context.Background(), userActor())
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.ListForUser(context.Background(), workerActor())
	assert.ErrorIs(t, err, ErrForbidden)

	items, err = svc.ListForWorker(context.Background(), workerActor())
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.ListForWorker(context.Background(), userActor())
	assert.ErrorIs(t, err, ErrForbidden)
}
