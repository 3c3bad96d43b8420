package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	studentModel "akademiku_backend/internals/features/academy/students/model"
	model "akademiku_backend/internals/features/finance/payments/model"
)

func TestMonthWindow(t *testing.T) {
	now := time.Date(2026, 9, 21, 15, 4, 5, 0, time.UTC)
	start, end := MonthWindow(now)

	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), end)

	// December rolls into the next year
	start, end = MonthWindow(time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthlyDueDate(t *testing.T) {
	due := MonthlyDueDate(time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), due)

	// Due date stays inside the billing month even when generated late
	due = MonthlyDueDate(time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 15, due.Day())
	assert.Equal(t, time.September, due.Month())
}

func TestMonthlyDescription(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Monthly Fee - Premium - September 2026", MonthlyDescription("Premium", now))
	assert.Equal(t, "Monthly Fee - Basic - January 2027",
		MonthlyDescription("Basic", time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC)))
}

/* ===================== In-memory store ===================== */

// fakePaymentStore implements PaymentStore for the batch-loop tests.
// clock stamps created payments so the month-window check behaves like
// payment_created_at would.
type fakePaymentStore struct {
	clock    time.Time
	students []studentModel.StudentModel

	billableCalls []uuid.UUID
	payments      []model.PaymentModel
	createErr     map[uuid.UUID]error
	statusCache   map[uuid.UUID]string

	outstanding []model.PaymentModel
	saveErr     error
	saveCalls   int
}

func newFakePaymentStore(clock time.Time) *fakePaymentStore {
	return &fakePaymentStore{
		clock:       clock,
		createErr:   map[uuid.UUID]error{},
		statusCache: map[uuid.UUID]string{},
	}
}

func (f *fakePaymentStore) BillableStudents(academyID uuid.UUID) ([]studentModel.StudentModel, error) {
	f.billableCalls = append(f.billableCalls, academyID)
	var out []studentModel.StudentModel
	for _, s := range f.students {
		if s.StudentAcademyID == academyID && s.StudentIsActive && s.StudentPackageType != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) HasPaymentInWindow(studentID uuid.UUID, start, end time.Time) (bool, error) {
	for _, p := range f.payments {
		if p.PaymentStudentID == studentID &&
			!p.CreatedAt.Before(start) && p.CreatedAt.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePaymentStore) CreatePayment(p *model.PaymentModel) error {
	if err := f.createErr[p.PaymentStudentID]; err != nil {
		return err
	}
	cp := *p
	cp.PaymentID = uuid.New()
	cp.CreatedAt = f.clock
	f.payments = append(f.payments, cp)
	return nil
}

func (f *fakePaymentStore) CacheStudentStatus(studentID uuid.UUID, status string) error {
	f.statusCache[studentID] = status
	return nil
}

func (f *fakePaymentStore) OutstandingPayments(academyID uuid.UUID, paymentID *uuid.UUID) ([]model.PaymentModel, error) {
	var out []model.PaymentModel
	for _, p := range f.outstanding {
		if p.PaymentAcademyID != academyID {
			continue
		}
		if paymentID != nil && p.PaymentID != *paymentID {
			continue
		}
		if p.PaymentStatus == model.PaymentStatusCompleted || p.PaymentDueDate == nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePaymentStore) SaveReminderState(p *model.PaymentModel) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	for i := range f.outstanding {
		if f.outstanding[i].PaymentID == p.PaymentID {
			f.outstanding[i].PaymentReminderSent = p.PaymentReminderSent
			f.outstanding[i].PaymentStatus = p.PaymentStatus
		}
	}
	return nil
}

func (f *fakePaymentStore) StudentByID(studentID uuid.UUID) (*studentModel.StudentModel, error) {
	for i := range f.students {
		if f.students[i].StudentID == studentID {
			return &f.students[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func billableStudent(academyID uuid.UUID, name string, fee float64) studentModel.StudentModel {
	return studentModel.StudentModel{
		StudentID:          uuid.New(),
		StudentAcademyID:   academyID,
		StudentName:        name,
		StudentPackageType: "Premium",
		StudentMonthlyFee:  fee,
		StudentIsActive:    true,
	}
}

/* ===================== Batch loop ===================== */

func TestGenerateMonthlyPayments_ScopedAndIdempotent(t *testing.T) {
	september := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	academyA := uuid.New()
	academyB := uuid.New()

	store := newFakePaymentStore(september)
	s1 := billableStudent(academyA, "Aline", 50000)
	s2 := billableStudent(academyA, "Eric", 30000)
	other := billableStudent(academyB, "Diane", 40000)
	store.students = []studentModel.StudentModel{s1, s2, other}

	res, err := GenerateMonthlyPayments(store, academyA, september)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, []uuid.UUID{academyA}, store.billableCalls)

	// Only the caller's academy is billed or status-flipped
	require.Len(t, store.payments, 2)
	for _, p := range store.payments {
		assert.Equal(t, academyA, p.PaymentAcademyID)
		assert.Equal(t, model.PaymentStatusPending, p.PaymentStatus)
		require.NotNil(t, p.PaymentDueDate)
		assert.Equal(t, 15, p.PaymentDueDate.Day())
	}
	assert.Equal(t, studentModel.StudentPaymentStatusPending, store.statusCache[s1.StudentID])
	assert.NotContains(t, store.statusCache, other.StudentID)

	// Same month again: every student skipped, nothing new inserted
	res, err = GenerateMonthlyPayments(store, academyA, september.AddDate(0, 0, 20))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 2, res.Skipped)
	assert.Len(t, store.payments, 2)

	// Next month bills again
	october := time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)
	store.clock = october
	res, err = GenerateMonthlyPayments(store, academyA, october)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Len(t, store.payments, 4)
}

func TestGenerateMonthlyPayments_SnapshotsFeeAndDiscount(t *testing.T) {
	now := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	academyID := uuid.New()

	store := newFakePaymentStore(now)
	s := billableStudent(academyID, "Eric", 30000)
	s.StudentDiscountPercentage = 10
	store.students = []studentModel.StudentModel{s}

	res, err := GenerateMonthlyPayments(store, academyID, now)
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)

	p := store.payments[0]
	assert.Equal(t, 27000.0, p.PaymentAmount)
	assert.Equal(t, 3000.0, p.PaymentDiscountAmount)
	require.NotNil(t, p.PaymentDescription)
	assert.Equal(t, "Monthly Fee - Premium - September 2026", *p.PaymentDescription)
}

func TestGenerateMonthlyPayments_SkipsNonBillable(t *testing.T) {
	now := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	academyID := uuid.New()

	store := newFakePaymentStore(now)
	free := billableStudent(academyID, "Scholarship", 50000)
	free.StudentDiscountPercentage = 100
	store.students = []studentModel.StudentModel{free}

	res, err := GenerateMonthlyPayments(store, academyID, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, store.payments)
}

func TestGenerateMonthlyPayments_UniqueViolationCountsAsSkip(t *testing.T) {
	now := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	academyID := uuid.New()

	store := newFakePaymentStore(now)
	s := billableStudent(academyID, "Aline", 50000)
	store.students = []studentModel.StudentModel{s}
	store.createErr[s.StudentID] = &pq.Error{Code: "23505"}

	res, err := GenerateMonthlyPayments(store, academyID, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 0, res.Failed)
}

func TestGenerateMonthlyPayments_FailureIsolation(t *testing.T) {
	now := time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)
	academyID := uuid.New()

	store := newFakePaymentStore(now)
	broken := billableStudent(academyID, "Broken", 50000)
	fine := billableStudent(academyID, "Fine", 30000)
	store.students = []studentModel.StudentModel{broken, fine}
	store.createErr[broken.StudentID] = errors.New("connection reset")

	res, err := GenerateMonthlyPayments(store, academyID, now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 2, res.Total)

	// Only the successful student gets the status cache flip
	assert.NotContains(t, store.statusCache, broken.StudentID)
	assert.Equal(t, studentModel.StudentPaymentStatusPending, store.statusCache[fine.StudentID])
}
