package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/notification"
)

var (
	now   = time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)
	today = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

type mocks struct {
	repo     *notification.MockRepository
	mailer   *notification.MockMailer
	contacts *notification.MockContacts
	scoper   *notification.MockScoper
}

func newService(ctrl *gomock.Controller, cfg notification.Config) (*notification.Service, *mocks) {
	m := &mocks{
		repo:     notification.NewMockRepository(ctrl),
		mailer:   notification.NewMockMailer(ctrl),
		contacts: notification.NewMockContacts(ctrl),
		scoper:   notification.NewMockScoper(ctrl),
	}

	svc := notification.NewService(m.repo, m.mailer, m.contacts, m.scoper, cfg,
		notification.WithClock(func() time.Time { return now }))

	return svc, m
}

func TestService_SweepExpiring(t *testing.T) {
	a := notification.Candidate{ContractID: uuid.New(), Dictamen: "D-1", Directorate: "Norte", Expiration: now.AddDate(0, 0, 10)}
	b := notification.Candidate{ContractID: uuid.New(), Dictamen: "D-2", Directorate: "Sur", Expiration: now.AddDate(0, 0, 20)}

	type testCase struct {
		name        string
		setupMock   func(m *mocks)
		wantCreated int
		wantErr     bool
	}

	tests := []testCase{
		{
			name: "CreatesAndEmailsOncePerContract",
			setupMock: func(m *mocks) {
				m.repo.EXPECT().Expiring(gomock.Any(), today, today.AddDate(0, 0, 30)).Return([]notification.Candidate{a, a, b}, nil)
				m.repo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n *notification.Notification) (bool, error) {
						assert.Equal(t, "El contrato D-1 está por vencer.", n.Description)
						return true, nil
					})
				m.repo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(false, nil)
				m.contacts.EXPECT().ContactsForDirectorate(gomock.Any(), "Norte").Return([]string{"dir@norte.gob"}, nil)
				m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, e notification.Email) {
						assert.Equal(t, []string{"dir@norte.gob"}, e.To)
						assert.Equal(t, "D-1", e.Data["dictamen"])
					})
			},
			wantCreated: 1,
		},
		{
			name: "EmailFailureDoesNotFailSweep",
			setupMock: func(m *mocks) {
				m.repo.EXPECT().Expiring(gomock.Any(), gomock.Any(), gomock.Any()).Return([]notification.Candidate{a}, nil)
				m.repo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(true, nil)
				m.contacts.EXPECT().ContactsForDirectorate(gomock.Any(), "Norte").Return(nil, errors.New("directory down"))
			},
			wantCreated: 1,
		},
		{
			name: "InsertFailureContinues",
			setupMock: func(m *mocks) {
				m.repo.EXPECT().Expiring(gomock.Any(), gomock.Any(), gomock.Any()).Return([]notification.Candidate{a, b}, nil)
				m.repo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(false, errors.New("db"))
				m.repo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(true, nil)
				m.contacts.EXPECT().ContactsForDirectorate(gomock.Any(), "Sur").Return(nil, nil)
			},
			wantCreated: 1,
			wantErr:     true,
		},
		{
			name: "NothingExpiring",
			setupMock: func(m *mocks) {
				m.repo.EXPECT().Expiring(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl, notification.Config{})
			tt.setupMock(m)

			created, err := svc.SweepExpiring(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantCreated, created)
		})
	}
}

func TestService_SweepExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl, notification.Config{})

	withNotice := notification.Candidate{ContractID: uuid.New(), Dictamen: "D-9"}
	without := notification.Candidate{ContractID: uuid.New(), Dictamen: "D-10"}
	noticeID := uuid.New()

	m.repo.EXPECT().FinishExpired(gomock.Any(), today).Return([]notification.Candidate{withNotice, without}, nil)
	gomock.InOrder(
		m.repo.EXPECT().FindByContract(gomock.Any(), withNotice.ContractID).Return(&notification.Notification{ID: noticeID}, nil),
		m.repo.EXPECT().UpdateDescription(gomock.Any(), noticeID, "El contrato D-9 ha finalizado su tiempo de contratación").Return(nil),
		m.repo.EXPECT().FindByContract(gomock.Any(), without.ContractID).Return(nil, notification.ErrNotFound),
	)

	n, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestService_SweepWindowFollowsLocalCalendar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// 21:00 on June 1st west of UTC is already June 2nd in UTC.
	local := time.Date(2024, 6, 1, 21, 0, 0, 0, time.FixedZone("UTC-4", -4*60*60))

	repo := notification.NewMockRepository(ctrl)
	svc := notification.NewService(repo, notification.NewMockMailer(ctrl), notification.NewMockContacts(ctrl),
		notification.NewMockScoper(ctrl), notification.Config{}, notification.WithClock(func() time.Time { return local }))

	repo.EXPECT().Expiring(gomock.Any(), today, today.AddDate(0, 0, 30)).Return(nil, nil)
	repo.EXPECT().FinishExpired(gomock.Any(), today).Return(nil, nil)

	_, err := svc.SweepExpiring(context.Background())
	require.NoError(t, err)

	_, err = svc.SweepExpired(context.Background())
	require.NoError(t, err)
}

func TestService_SweepExpiring_Twice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl, notification.Config{})

	candidates := []notification.Candidate{
		{ContractID: uuid.New(), Dictamen: "D-1", Directorate: "Norte", Expiration: today.AddDate(0, 0, 5)},
		{ContractID: uuid.New(), Dictamen: "D-2", Directorate: "Norte", Expiration: today.AddDate(0, 0, 15)},
	}

	stored := make(map[uuid.UUID]int)

	m.repo.EXPECT().Expiring(gomock.Any(), gomock.Any(), gomock.Any()).Return(candidates, nil).Times(2)
	m.repo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *notification.Notification) (bool, error) {
			stored[n.ContractID]++
			return stored[n.ContractID] == 1, nil
		}).Times(4)
	m.contacts.EXPECT().ContactsForDirectorate(gomock.Any(), "Norte").Return([]string{"dir@norte.gob"}, nil).Times(2)
	m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(2)

	first, err := svc.SweepExpiring(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first)

	second, err := svc.SweepExpiring(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second)
}

func TestService_ArchiveRead(t *testing.T) {
	// Every combination of the three read markers; only the fully read one
	// may be deleted.
	var read []*notification.Notification

	for mask := range 8 {
		read = append(read, &notification.Notification{
			ID:               uuid.New(),
			ReadByAdmin:      mask&1 != 0,
			ReadByDirector:   mask&2 != 0,
			ReadBySpecialist: mask&4 != 0,
		})
	}

	type testCase struct {
		name      string
		setupMock func(m *mocks)
		want      int64
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "DeletesOnlyFullyRead",
			setupMock: func(m *mocks) {
				m.repo.EXPECT().ListRead(gomock.Any()).Return(read, nil)
				m.repo.EXPECT().DeleteIDs(gomock.Any(), []uuid.UUID{read[7].ID}).Return(int64(1), nil)
			},
			want: 1,
		},
		{
			name: "NothingFullyRead",
			setupMock: func(m *mocks) {
				m.repo.EXPECT().ListRead(gomock.Any()).Return(read[:7], nil)
			},
		},
		{
			name: "ListFails",
			setupMock: func(m *mocks) {
				m.repo.EXPECT().ListRead(gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl, notification.Config{})
			tt.setupMock(m)

			got, err := svc.ArchiveRead(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotification_Archivable(t *testing.T) {
	for mask := range 8 {
		n := notification.Notification{
			ReadByAdmin:      mask&1 != 0,
			ReadByDirector:   mask&2 != 0,
			ReadBySpecialist: mask&4 != 0,
		}

		assert.Equal(t, mask == 7, n.Archivable(), "markers %03b", mask)
	}
}

func TestService_MarkRead(t *testing.T) {
	director := access.Actor{ID: uuid.New(), Role: access.RoleDirector}
	id := uuid.New()

	type testCase struct {
		name      string
		cfg       notification.Config
		stored    *notification.Notification
		wantFlags notification.ReadFlags
		wantErr   error
	}

	tests := []testCase{
		{
			name:      "PerRole",
			stored:    &notification.Notification{ID: id, Directorate: "Norte"},
			wantFlags: notification.ReadFlags{Director: true},
		},
		{
			name:      "CollapseOnRead",
			cfg:       notification.Config{CollapseOnRead: true},
			stored:    &notification.Notification{ID: id, Directorate: "Norte"},
			wantFlags: notification.AllRead,
		},
		{
			name:    "OutsideScope",
			stored:  &notification.Notification{ID: id, Directorate: "Sur"},
			wantErr: access.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl, tt.cfg)

			m.scoper.EXPECT().ScopeFor(gomock.Any(), director).Return(access.Scope{Directorates: []string{"Norte"}}, nil)
			m.repo.EXPECT().Get(gomock.Any(), id).Return(tt.stored, nil)

			if tt.wantErr == nil {
				m.repo.EXPECT().SetRead(gomock.Any(), id, tt.wantFlags).Return(nil)
			}

			got, err := svc.MarkRead(context.Background(), director, id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.ReadByDirector)
			assert.Equal(t, tt.cfg.CollapseOnRead, got.Archivable())
		})
	}
}

func TestService_MarkAllRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl, notification.Config{})
	specialist := access.Actor{ID: uuid.New(), Role: access.RoleSpecialist}
	scope := access.Scope{Directorates: []string{"Norte", "Este"}}

	m.scoper.EXPECT().ScopeFor(gomock.Any(), specialist).Return(scope, nil)
	m.repo.EXPECT().MarkAllRead(gomock.Any(), notification.ReadFlags{Specialist: true}, scope).Return(int64(4), nil)

	n, err := svc.MarkAllRead(context.Background(), specialist)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestService_ListUnread(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl, notification.Config{})
	admin := access.Actor{ID: uuid.New(), Role: access.RoleAdmin}
	want := []*notification.Notification{{ID: uuid.New()}}

	m.scoper.EXPECT().ScopeFor(gomock.Any(), admin).Return(access.Scope{All: true}, nil)
	m.repo.EXPECT().ListUnread(gomock.Any(), notification.ReadFlags{Admin: true}, access.Scope{All: true}).Return(want, nil)

	got, err := svc.ListUnread(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
