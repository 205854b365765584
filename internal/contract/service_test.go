package contract_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/apperr"
	"github.com/MrJamesThe3rd/contratos/internal/audit"
	"github.com/MrJamesThe3rd/contratos/internal/audit/audittest"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/document"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

var now = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

type mocks struct {
	repo  *contract.MockRepository
	notif *contract.MockNotificationRemover
	docs  *document.MockStore
	dir   *access.MockDirectory
	audit *audittest.Recorder
}

func newService(ctrl *gomock.Controller, opts ...contract.Option) (*contract.Service, *mocks) {
	m := &mocks{
		repo:  contract.NewMockRepository(ctrl),
		notif: contract.NewMockNotificationRemover(ctrl),
		docs:  document.NewMockStore(ctrl),
		dir:   access.NewMockDirectory(ctrl),
		audit: &audittest.Recorder{},
	}

	opts = append([]contract.Option{contract.WithClock(func() time.Time { return now })}, opts...)
	svc := contract.NewService(m.repo, m.notif, m.docs, m.audit, access.NewAuthorizer(m.dir), opts...)

	return svc, m
}

func date(y int, mo time.Month, d int) *time.Time {
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var (
	admin    = access.Actor{ID: uuid.New(), Name: "admin", Role: access.RoleAdmin}
	director = access.Actor{ID: uuid.New(), Name: "dir.norte", Role: access.RoleDirector}
)

func TestService_Register_ReceivedDateByCalendarDay(t *testing.T) {
	west := time.FixedZone("UTC-4", -4*60*60)
	east := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name    string
		clock   time.Time
		wantErr bool
	}{
		{name: "TomorrowWestOfUTC", clock: time.Date(2024, 7, 1, 21, 0, 0, 0, west), wantErr: true},
		{name: "TodayEastOfUTC", clock: time.Date(2024, 7, 2, 0, 30, 0, 0, east)},
		{name: "TodayLateWestOfUTC", clock: time.Date(2024, 7, 2, 23, 0, 0, 0, west)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, m := newService(ctrl, contract.WithClock(func() time.Time { return tt.clock }))

			params := contract.RegisterParams{
				Dictamen:     "D-200",
				Directorate:  "Norte",
				Type:         "Servicios",
				ReceivedDate: date(2024, 7, 2),
			}

			if !tt.wantErr {
				m.repo.EXPECT().FindByKey(gomock.Any(), "D-200", "Norte").Return(nil, contract.ErrNotFound)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			}

			_, err := svc.Register(context.Background(), admin, params, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, contract.ErrFutureReceivedDate)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Register(t *testing.T) {
	base := contract.RegisterParams{
		Dictamen:     "D-100",
		Directorate:  "Norte",
		Type:         "Servicios",
		Object:       "Mantenimiento",
		Entity:       "ACME",
		ReceivedDate: date(2024, 1, 1),
		Principal:    money("1500"),
		Term:         &term.Term{Amount: 6, Unit: term.UnitMonths},
	}

	type testCase struct {
		name      string
		actor     access.Actor
		params    func() contract.RegisterParams
		file      *document.File
		setupMock func(m *mocks)
		wantKind  *apperr.Kind
		check     func(t *testing.T, c *contract.Contract, m *mocks)
	}

	conflict, forbidden, validation, external := apperr.Conflict, apperr.Forbidden, apperr.Validation, apperr.ExternalService

	tests := []testCase{
		{
			name:   "Success",
			actor:  admin,
			params: func() contract.RegisterParams { return base },
			setupMock: func(m *mocks) {
				m.repo.EXPECT().FindByKey(gomock.Any(), "D-100", "Norte").Return(nil, contract.ErrNotFound)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *contract.Contract) error {
						c.ID = uuid.New()
						return nil
					})
			},
			check: func(t *testing.T, c *contract.Contract, m *mocks) {
				assert.Equal(t, *date(2024, 7, 1), *c.Expiration)
				assert.True(t, c.Available.Equal(decimal.NewFromInt(1500)))
				assert.True(t, c.Spent.IsZero())
				assert.Equal(t, contract.StatusPending, c.Status)
				assert.Equal(t, "admin", c.Info.CreatedBy)

				require.Len(t, m.audit.Entries, 1)
				e := m.audit.Entries[0]
				assert.Equal(t, audit.ActionInsert, e.ActionType)
				assert.Equal(t, contract.EntityName, e.EntityName)
				assert.Nil(t, e.OldValue)

				snap := audittest.Decode(e.NewValue)
				assert.Equal(t, "$1500.00", snap["Monto"])
				assert.Equal(t, "01/07/2024", snap["Fecha_de_Vencimiento"])
				assert.Equal(t, "6 meses", snap["Vigencia"])
				assert.Equal(t, "$0.00", snap["Monto_Gastado"])
				assert.NotContains(t, snap, "Firmado")
			},
		},
		{
			name:  "NoPrincipalLeavesExpirationUnset",
			actor: admin,
			params: func() contract.RegisterParams {
				p := base
				p.Principal = nil

				return p
			},
			setupMock: func(m *mocks) {
				m.repo.EXPECT().FindByKey(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, contract.ErrNotFound)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, c *contract.Contract, _ *mocks) {
				assert.Nil(t, c.Expiration)
				assert.Nil(t, c.Available)
			},
		},
		{
			name:   "Duplicate",
			actor:  admin,
			params: func() contract.RegisterParams { return base },
			setupMock: func(m *mocks) {
				m.repo.EXPECT().FindByKey(gomock.Any(), "D-100", "Norte").
					Return(&contract.Contract{ID: uuid.New(), Dictamen: "D-100", Directorate: "Norte"}, nil)
			},
			wantKind: &conflict,
		},
		{
			name:  "DirectorOutsideScope",
			actor: director,
			params: func() contract.RegisterParams {
				p := base
				p.Directorate = "Sur"

				return p
			},
			setupMock: func(m *mocks) {
				m.dir.EXPECT().DirectoratesForExecutive(gomock.Any(), director.ID).Return([]string{"Norte"}, nil)
			},
			wantKind: &forbidden,
		},
		{
			name:  "FutureReceivedDate",
			actor: admin,
			params: func() contract.RegisterParams {
				p := base
				p.ReceivedDate = date(2024, 4, 1)

				return p
			},
			wantKind: &validation,
		},
		{
			name:  "InvalidTerm",
			actor: admin,
			params: func() contract.RegisterParams {
				p := base
				p.Term = &term.Term{Amount: 0, Unit: term.UnitMonths}

				return p
			},
			wantKind: &validation,
		},
		{
			name:   "UploadFailureAbortsBeforeWrite",
			actor:  admin,
			params: func() contract.RegisterParams { return base },
			file:   &document.File{Name: "contrato.pdf", Data: []byte("pdf")},
			setupMock: func(m *mocks) {
				m.repo.EXPECT().FindByKey(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, contract.ErrNotFound)
				m.docs.EXPECT().Upload(gomock.Any(), "contrato-20240315.pdf", []byte("pdf")).Return(nil, errors.New("quota"))
			},
			wantKind: &external,
		},
		{
			name:   "LinkAlreadyShared",
			actor:  admin,
			params: func() contract.RegisterParams { return base },
			file:   &document.File{Name: "contrato.pdf", Data: []byte("pdf")},
			setupMock: func(m *mocks) {
				m.repo.EXPECT().FindByKey(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, contract.ErrNotFound)
				m.docs.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(&document.Stored{Path: "contratos/contrato-20240315.pdf"}, nil)
				m.docs.EXPECT().PublicLink(gomock.Any(), "contratos/contrato-20240315.pdf").Return("", document.ErrLinkExists)
				m.docs.EXPECT().Delete(gomock.Any(), "contratos/contrato-20240315.pdf").Return(nil)
			},
			wantKind: &conflict,
		},
		{
			name:   "WithDocument",
			actor:  admin,
			params: func() contract.RegisterParams { return base },
			file:   &document.File{Name: "contrato.pdf", Data: []byte("pdf")},
			setupMock: func(m *mocks) {
				m.repo.EXPECT().FindByKey(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, contract.ErrNotFound)
				m.docs.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(&document.Stored{Path: "contratos/c.pdf"}, nil)
				m.docs.EXPECT().PublicLink(gomock.Any(), "contratos/c.pdf").Return("https://docs/c.pdf", nil)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, c *contract.Contract, _ *mocks) {
				require.NotNil(t, c.Document)
				assert.Equal(t, "https://docs/c.pdf", c.Document.Link)
				assert.Equal(t, "contratos/c.pdf", c.Document.Path)
				assert.Equal(t, "contrato.pdf", c.Document.OriginalName)
			},
		},
		{
			name:   "CreateFailureRemovesUpload",
			actor:  admin,
			params: func() contract.RegisterParams { return base },
			file:   &document.File{Name: "contrato.pdf", Data: []byte("pdf")},
			setupMock: func(m *mocks) {
				m.repo.EXPECT().FindByKey(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, contract.ErrNotFound)
				m.docs.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(&document.Stored{Path: "contratos/c.pdf"}, nil)
				m.docs.EXPECT().PublicLink(gomock.Any(), gomock.Any()).Return("https://docs/c.pdf", nil)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(contract.ErrDuplicate)
				m.docs.EXPECT().Delete(gomock.Any(), "contratos/c.pdf").Return(nil)
			},
			wantKind: &conflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := svc.Register(context.Background(), tt.actor, tt.params(), tt.file)
			if tt.wantKind != nil {
				require.Error(t, err)
				assert.Equal(t, *tt.wantKind, apperr.KindOf(err))
				assert.Nil(t, got)
				assert.Empty(t, m.audit.Entries)

				return
			}

			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t, got, m)
			}
		})
	}
}

func TestService_Register_DuplicateMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	m.repo.EXPECT().FindByKey(gomock.Any(), "D-7", "Norte").Return(&contract.Contract{ID: uuid.New()}, nil)

	_, err := svc.Register(context.Background(), admin, contract.RegisterParams{
		Dictamen: "D-7", Directorate: "Norte", Type: "Obras",
	}, nil)

	require.ErrorIs(t, err, contract.ErrDuplicate)
	assert.Equal(t, "El registro del contrato D-7 ya existe en la Norte", apperr.Message(err))
}

func stored() *contract.Contract {
	return &contract.Contract{
		ID:           uuid.New(),
		Dictamen:     "D-1",
		Directorate:  "Norte",
		Type:         "Servicios",
		Entity:       "ACME",
		ReceivedDate: date(2024, 1, 1),
		Principal:    money("1000"),
		Available:    money("500"),
		Spent:        decimal.NewFromInt(500),
		Term:         &term.Term{Amount: 6, Unit: term.UnitMonths},
		Expiration:   date(2024, 7, 1),
		Status:       contract.StatusInExecution,
		Document:     &contract.Document{Link: "https://docs/old.pdf", Path: "contratos/old.pdf", OriginalName: "old.pdf"},
		Version:      3,
	}
}

func TestService_Update(t *testing.T) {
	type testCase struct {
		name      string
		patch     contract.Patch
		file      *document.File
		setupMock func(m *mocks, c *contract.Contract)
		wantKind  *apperr.Kind
		check     func(t *testing.T, got *contract.Contract, m *mocks)
	}

	validation, conflict, notFound := apperr.Validation, apperr.Conflict, apperr.NotFound
	three := 3
	stale := 2

	tests := []testCase{
		{
			name:  "PrincipalBelowSpent",
			patch: contract.Patch{Principal: money("400")},
			setupMock: func(m *mocks, c *contract.Contract) {
				m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
			},
			wantKind: &validation,
		},
		{
			name:  "PrincipalRecomputesAvailable",
			patch: contract.Patch{Principal: money("2000"), Version: &three},
			setupMock: func(m *mocks, c *contract.Contract) {
				m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *contract.Contract, m *mocks) {
				assert.True(t, got.Available.Equal(decimal.NewFromInt(1500)))
				assert.Equal(t, "admin", got.Info.ModifiedBy)

				require.Len(t, m.audit.Entries, 1)
				e := m.audit.Entries[0]
				assert.Equal(t, audit.ActionUpdate, e.ActionType)
				assert.Equal(t, map[string]any{
					"Valores_anteriores": map[string]any{"Monto": "$1000.00", "Monto_Disponible": "$500.00"},
				}, audittest.Decode(e.OldValue))
				assert.Equal(t, map[string]any{
					"Valores_nuevos": map[string]any{"Monto": "$2000.00", "Monto_Disponible": "$1500.00"},
				}, audittest.Decode(e.NewValue))
			},
		},
		{
			name:  "TermRecomputesExpirationWithAppliedSupplements",
			patch: contract.Patch{Term: &term.Term{Amount: 1, Unit: term.UnitYears}},
			setupMock: func(m *mocks, c *contract.Contract) {
				c.Supplements = []contract.AppliedSupplement{{Name: "S1", Term: &term.Term{Amount: 2, Unit: term.UnitMonths}}}
				m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *contract.Contract, _ *mocks) {
				assert.Equal(t, *date(2025, 3, 1), *got.Expiration)
			},
		},
		{
			name:  "NothingChanged",
			patch: contract.Patch{Entity: ptr("ACME")},
			setupMock: func(m *mocks, c *contract.Contract) {
				m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
			},
			check: func(t *testing.T, _ *contract.Contract, m *mocks) {
				assert.Empty(t, m.audit.Entries)
			},
		},
		{
			name:  "StaleVersionGiven",
			patch: contract.Patch{Entity: ptr("Otra"), Version: &stale},
			setupMock: func(m *mocks, c *contract.Contract) {
				m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
			},
			wantKind: &conflict,
		},
		{
			name:  "ConcurrentWriteLoses",
			patch: contract.Patch{Entity: ptr("Otra")},
			setupMock: func(m *mocks, c *contract.Contract) {
				m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(contract.ErrStale)
			},
			wantKind: &conflict,
		},
		{
			name:  "NotFound",
			patch: contract.Patch{Entity: ptr("Otra")},
			setupMock: func(m *mocks, c *contract.Contract) {
				m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(nil, contract.ErrNotFound)
			},
			wantKind: &notFound,
		},
		{
			name:  "MoveToTakenKey",
			patch: contract.Patch{Dictamen: ptr("D-2")},
			setupMock: func(m *mocks, c *contract.Contract) {
				m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				m.repo.EXPECT().FindByKey(gomock.Any(), "D-2", "Norte").Return(&contract.Contract{ID: uuid.New()}, nil)
			},
			wantKind: &conflict,
		},
		{
			name: "ReplacesDocumentAfterWrite",
			file: &document.File{Name: "nuevo.pdf", Data: []byte("new")},
			setupMock: func(m *mocks, c *contract.Contract) {
				m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				gomock.InOrder(
					m.docs.EXPECT().Upload(gomock.Any(), "nuevo-20240315.pdf", []byte("new")).Return(&document.Stored{Path: "contratos/nuevo.pdf"}, nil),
					m.docs.EXPECT().PublicLink(gomock.Any(), "contratos/nuevo.pdf").Return("https://docs/nuevo.pdf", nil),
					m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
					m.docs.EXPECT().Delete(gomock.Any(), "contratos/old.pdf").Return(nil),
				)
			},
			check: func(t *testing.T, got *contract.Contract, m *mocks) {
				assert.Equal(t, "https://docs/nuevo.pdf", got.Document.Link)

				require.Len(t, m.audit.Entries, 1)
				assert.Equal(t, map[string]any{
					"Valores_nuevos": map[string]any{"Documento": "nuevo.pdf"},
				}, audittest.Decode(m.audit.Entries[0].NewValue))
			},
		},
		{
			name: "FailedWriteKeepsOldDocument",
			file: &document.File{Name: "nuevo.pdf", Data: []byte("new")},
			setupMock: func(m *mocks, c *contract.Contract) {
				m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				m.docs.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(&document.Stored{Path: "contratos/nuevo.pdf"}, nil)
				m.docs.EXPECT().PublicLink(gomock.Any(), gomock.Any()).Return("https://docs/nuevo.pdf", nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(contract.ErrStale)
				m.docs.EXPECT().Delete(gomock.Any(), "contratos/nuevo.pdf").Return(nil)
			},
			wantKind: &conflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)
			c := stored()

			if tt.setupMock != nil {
				tt.setupMock(m, c)
			}

			got, err := svc.Update(context.Background(), admin, c.ID, tt.patch, tt.file)
			if tt.wantKind != nil {
				require.Error(t, err)
				assert.Equal(t, *tt.wantKind, apperr.KindOf(err))
				assert.Empty(t, m.audit.Entries)

				return
			}

			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t, got, m)
			}
		})
	}
}

func TestService_Update_ForbiddenTargetDirectorate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	c := stored()

	m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
	m.dir.EXPECT().DirectoratesForExecutive(gomock.Any(), director.ID).Return([]string{"Norte"}, nil)

	_, err := svc.Update(context.Background(), director, c.ID, contract.Patch{Directorate: ptr("Sur")}, nil)

	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestService_Delete(t *testing.T) {
	t.Run("CascadeInOrder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)
		c := stored()

		m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
		gomock.InOrder(
			m.repo.EXPECT().DeleteInvoices(gomock.Any(), c.ID).Return(nil),
			m.notif.EXPECT().DeleteByContract(gomock.Any(), c.ID).Return(nil),
			m.docs.EXPECT().Delete(gomock.Any(), "contratos/old.pdf").Return(nil),
			m.repo.EXPECT().Delete(gomock.Any(), c.ID).Return(nil),
		)

		require.NoError(t, svc.Delete(context.Background(), admin, c.ID))

		assert.Equal(t, []audit.Action{audit.ActionDelete}, m.audit.Actions())

		snap := audittest.Decode(m.audit.Entries[0].OldValue)
		assert.Equal(t, "D-1", snap["Numero_de_Dictamen"])
		assert.Contains(t, snap, "Firmado")
		assert.Nil(t, snap["Firmado"])
	})

	t.Run("NotificationFailureStopsCascade", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)
		c := stored()

		m.repo.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
		m.repo.EXPECT().DeleteInvoices(gomock.Any(), c.ID).Return(nil)
		m.notif.EXPECT().DeleteByContract(gomock.Any(), c.ID).Return(errors.New("db down"))

		err := svc.Delete(context.Background(), admin, c.ID)

		var cascade *contract.CascadeError
		require.ErrorAs(t, err, &cascade)
		assert.Equal(t, contract.StepNotification, cascade.Step)
		assert.Empty(t, m.audit.Entries)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)
		id := uuid.New()

		m.repo.EXPECT().Get(gomock.Any(), id).Return(nil, contract.ErrNotFound)

		err := svc.Delete(context.Background(), admin, id)
		require.ErrorIs(t, err, contract.ErrNotFound)
	})
}

func TestService_Filter(t *testing.T) {
	t.Run("TypeRequired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newService(ctrl)

		_, err := svc.Filter(context.Background(), admin, contract.Criteria{})
		require.ErrorIs(t, err, contract.ErrTypeRequired)
	})

	t.Run("DirectorScoped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)
		want := []*contract.Contract{stored()}

		m.dir.EXPECT().DirectoratesForExecutive(gomock.Any(), director.ID).Return([]string{"Norte"}, nil)
		m.repo.EXPECT().
			List(gomock.Any(), contract.Criteria{Type: "Servicios"}, access.Scope{Directorates: []string{"Norte"}}).
			Return(want, nil)

		got, err := svc.ListByType(context.Background(), director, "Servicios")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("DirectorateOutsideScope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)

		m.dir.EXPECT().DirectoratesForExecutive(gomock.Any(), director.ID).Return([]string{"Norte"}, nil)

		_, err := svc.Filter(context.Background(), director, contract.Criteria{Type: "Servicios", Directorate: "Sur"})
		require.Error(t, err)
		assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	})
}

func ptr[T any](v T) *T { return &v }
