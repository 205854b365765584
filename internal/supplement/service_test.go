package supplement_test

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
	"github.com/MrJamesThe3rd/contratos/internal/supplement"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

var (
	now   = time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	admin = access.Actor{ID: uuid.New(), Name: "admin", Role: access.RoleAdmin}
)

type mocks struct {
	repo      *supplement.MockRepository
	tx        *supplement.MockConsumeTx
	contracts *supplement.MockContractReader
	notif     *supplement.MockNotificationRemover
	dir       *access.MockDirectory
	audit     *audittest.Recorder
}

func newService(ctrl *gomock.Controller) (*supplement.Service, *mocks) {
	m := &mocks{
		repo:      supplement.NewMockRepository(ctrl),
		tx:        supplement.NewMockConsumeTx(ctrl),
		contracts: supplement.NewMockContractReader(ctrl),
		notif:     supplement.NewMockNotificationRemover(ctrl),
		dir:       access.NewMockDirectory(ctrl),
		audit:     &audittest.Recorder{},
	}

	svc := supplement.NewService(m.repo, m.contracts, m.notif, m.audit, access.NewAuthorizer(m.dir),
		supplement.WithClock(func() time.Time { return now }))

	return svc, m
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func day(y int, mo time.Month, d int) *time.Time {
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newContract() *contract.Contract {
	return &contract.Contract{
		ID:                   uuid.New(),
		Dictamen:             "D-1",
		Directorate:          "Norte",
		Type:                 "Servicios",
		ReceivedDate:         day(2024, 1, 1),
		Principal:            money("1000"),
		Available:            money("800"),
		Spent:                decimal.NewFromInt(200),
		Term:                 &term.Term{Amount: 6, Unit: term.UnitMonths},
		Expiration:           day(2024, 7, 1),
		Status:               contract.StatusInExecution,
		HasPendingSupplement: true,
		Version:              1,
	}
}

func TestService_Create(t *testing.T) {
	c := newContract()
	twoMonths := &term.Term{Amount: 2, Unit: term.UnitMonths}

	type testCase struct {
		name      string
		params    supplement.Params
		setupMock func(m *mocks)
		wantErr   error
		wantKind  apperr.Kind
	}

	tests := []testCase{
		{
			name:   "Success",
			params: supplement.Params{Name: "Ampliación", Term: twoMonths, Amount: money("500")},
			setupMock: func(m *mocks) {
				m.contracts.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *supplement.Supplement) error {
						s.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:   "NameRequired",
			params: supplement.Params{Term: twoMonths},
			setupMock: func(m *mocks) {
				m.contracts.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
			},
			wantErr:  supplement.ErrNameRequired,
			wantKind: apperr.Validation,
		},
		{
			name:   "NeitherTermNorAmount",
			params: supplement.Params{Name: "Vacío"},
			setupMock: func(m *mocks) {
				m.contracts.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
			},
			wantErr:  supplement.ErrEmpty,
			wantKind: apperr.Validation,
		},
		{
			name:   "NegativeAmount",
			params: supplement.Params{Name: "Rebaja", Amount: money("-10")},
			setupMock: func(m *mocks) {
				m.contracts.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
			},
			wantErr:  supplement.ErrNonPositiveAmount,
			wantKind: apperr.Validation,
		},
		{
			name:   "ContractNotFound",
			params: supplement.Params{Name: "Ampliación", Term: twoMonths},
			setupMock: func(m *mocks) {
				m.contracts.EXPECT().Get(gomock.Any(), c.ID).Return(nil, contract.ErrNotFound)
			},
			wantErr:  contract.ErrNotFound,
			wantKind: apperr.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)
			tt.setupMock(m)

			got, err := svc.Create(context.Background(), admin, c.ID, tt.params)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				assert.Empty(t, m.audit.Entries)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, c.ID, got.ContractID)

			require.Len(t, m.audit.Entries, 1)
			assert.Equal(t, audit.ActionInsert, m.audit.Entries[0].ActionType)

			snap := audittest.Decode(m.audit.Entries[0].NewValue)
			assert.Equal(t, "Ampliación", snap["Nombre"])
			assert.Equal(t, "2 meses", snap["Tiempo"])
			assert.Equal(t, "$500.00", snap["Monto"])
		})
	}
}

func TestService_ListByContract(t *testing.T) {
	t.Run("EmptyClearsPendingFlag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)
		c := newContract()

		m.contracts.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
		m.repo.EXPECT().ListByContract(gomock.Any(), c.ID).Return(nil, nil)
		m.repo.EXPECT().SetPending(gomock.Any(), c.ID, false).Return(nil)

		got, err := svc.ListByContract(context.Background(), admin, c.ID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("NonEmptyKeepsFlag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newService(ctrl)
		c := newContract()
		want := []*supplement.Supplement{{ID: uuid.New(), ContractID: c.ID, Name: "S2"}, {ID: uuid.New(), ContractID: c.ID, Name: "S1"}}

		m.contracts.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
		m.repo.EXPECT().ListByContract(gomock.Any(), c.ID).Return(want, nil)

		got, err := svc.ListByContract(context.Background(), admin, c.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	c := newContract()
	sup := &supplement.Supplement{ID: uuid.New(), ContractID: c.ID, Name: "S1", Amount: money("100")}
	name := "S1 corregido"

	m.repo.EXPECT().Get(gomock.Any(), sup.ID).Return(sup, nil)
	m.contracts.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
	m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Update(context.Background(), admin, sup.ID, supplement.Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, now, got.UpdatedAt)

	require.Len(t, m.audit.Entries, 1)
	e := m.audit.Entries[0]
	assert.Equal(t, audit.ActionUpdate, e.ActionType)
	assert.Equal(t, map[string]any{"Nombre": name}, audittest.Decode(e.OldValue))
	assert.Equal(t, "$100.00", audittest.Decode(e.NewValue)["Monto"])
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	c := newContract()
	sup := &supplement.Supplement{ID: uuid.New(), ContractID: c.ID, Name: "S1", Amount: money("100")}

	m.repo.EXPECT().Get(gomock.Any(), sup.ID).Return(sup, nil)
	m.contracts.EXPECT().Get(gomock.Any(), c.ID).Return(c, nil)
	m.repo.EXPECT().Delete(gomock.Any(), sup.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), admin, sup.ID))
	assert.Equal(t, []audit.Action{audit.ActionDelete}, m.audit.Actions())
	assert.Equal(t, "S1", audittest.Decode(m.audit.Entries[0].OldValue)["Nombre"])
}

func TestService_Consume(t *testing.T) {
	type testCase struct {
		name      string
		sup       func(contractID uuid.UUID) *supplement.Supplement
		setupMock func(m *mocks, c *contract.Contract, s *supplement.Supplement)
		wantErr   error
		check     func(t *testing.T, got *contract.Contract, m *mocks)
	}

	tests := []testCase{
		{
			name: "ExtendsAndClearsNotification",
			sup: func(id uuid.UUID) *supplement.Supplement {
				return &supplement.Supplement{ID: uuid.New(), ContractID: id, Name: "S1",
					Term: &term.Term{Amount: 2, Unit: term.UnitMonths}, Amount: money("500")}
			},
			setupMock: func(m *mocks, c *contract.Contract, s *supplement.Supplement) {
				m.repo.EXPECT().Get(gomock.Any(), s.ID).Return(s, nil)
				m.repo.EXPECT().BeginConsume(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().Rollback().Return(nil).AnyTimes()
				gomock.InOrder(
					m.tx.EXPECT().Contract(gomock.Any(), c.ID).Return(c, nil),
					m.tx.EXPECT().CountByContract(gomock.Any(), c.ID).Return(1, nil),
					m.tx.EXPECT().SaveContract(gomock.Any(), c).Return(nil),
					m.tx.EXPECT().DeleteSupplement(gomock.Any(), s.ID).Return(nil),
					m.tx.EXPECT().Commit().Return(nil),
					m.notif.EXPECT().DeleteByContract(gomock.Any(), c.ID).Return(nil),
				)
			},
			check: func(t *testing.T, got *contract.Contract, m *mocks) {
				assert.Equal(t, *day(2024, 9, 1), *got.Expiration)
				assert.True(t, got.Principal.Equal(decimal.NewFromInt(1500)))
				assert.True(t, got.Available.Equal(decimal.NewFromInt(1300)))
				assert.False(t, got.HasPendingSupplement)
				require.Len(t, got.Supplements, 1)
				assert.Equal(t, "S1", got.Supplements[0].Name)
				assert.True(t, got.Supplements[0].OriginalAmount.Equal(decimal.NewFromInt(500)))
				assert.True(t, got.Supplements[0].OriginalAmount.Equal(*got.Supplements[0].Amount))

				assert.Equal(t, []audit.Action{audit.ActionUse, audit.ActionUpdate}, m.audit.Actions())
				assert.Equal(t, supplement.EntityName, m.audit.Entries[0].EntityName)
				assert.Equal(t, contract.EntityName, m.audit.Entries[1].EntityName)

				newVals := audittest.Decode(m.audit.Entries[1].NewValue)["Valores_nuevos"].(map[string]any)
				assert.Equal(t, "01/09/2024", newVals["Fecha_de_Vencimiento"])
				assert.Equal(t, "S1", newVals["Suplemento"])
			},
		},
		{
			name: "ShortExtensionKeepsNotification",
			sup: func(id uuid.UUID) *supplement.Supplement {
				return &supplement.Supplement{ID: uuid.New(), ContractID: id, Name: "S1",
					Term: &term.Term{Amount: 5, Unit: term.UnitDays}}
			},
			setupMock: func(m *mocks, c *contract.Contract, s *supplement.Supplement) {
				m.repo.EXPECT().Get(gomock.Any(), s.ID).Return(s, nil)
				m.repo.EXPECT().BeginConsume(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().Rollback().Return(nil).AnyTimes()
				m.tx.EXPECT().Contract(gomock.Any(), c.ID).Return(c, nil)
				m.tx.EXPECT().CountByContract(gomock.Any(), c.ID).Return(2, nil)
				m.tx.EXPECT().SaveContract(gomock.Any(), c).Return(nil)
				m.tx.EXPECT().DeleteSupplement(gomock.Any(), s.ID).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
			},
			check: func(t *testing.T, got *contract.Contract, _ *mocks) {
				assert.Equal(t, *day(2024, 7, 6), *got.Expiration)
				assert.True(t, got.HasPendingSupplement)
				assert.True(t, got.Principal.Equal(decimal.NewFromInt(1000)))
			},
		},
		{
			name: "SupplementNotFound",
			sup: func(id uuid.UUID) *supplement.Supplement {
				return &supplement.Supplement{ID: uuid.New(), ContractID: id}
			},
			setupMock: func(m *mocks, _ *contract.Contract, s *supplement.Supplement) {
				m.repo.EXPECT().Get(gomock.Any(), s.ID).Return(nil, supplement.ErrNotFound)
			},
			wantErr: supplement.ErrNotFound,
		},
		{
			name: "StaleContractRollsBack",
			sup: func(id uuid.UUID) *supplement.Supplement {
				return &supplement.Supplement{ID: uuid.New(), ContractID: id, Name: "S1", Amount: money("10")}
			},
			setupMock: func(m *mocks, c *contract.Contract, s *supplement.Supplement) {
				m.repo.EXPECT().Get(gomock.Any(), s.ID).Return(s, nil)
				m.repo.EXPECT().BeginConsume(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().Contract(gomock.Any(), c.ID).Return(c, nil)
				m.tx.EXPECT().CountByContract(gomock.Any(), c.ID).Return(1, nil)
				m.tx.EXPECT().SaveContract(gomock.Any(), c).Return(contract.ErrStale)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: contract.ErrStale,
		},
		{
			name: "DeleteFailureRollsBack",
			sup: func(id uuid.UUID) *supplement.Supplement {
				return &supplement.Supplement{ID: uuid.New(), ContractID: id, Name: "S1", Amount: money("10")}
			},
			setupMock: func(m *mocks, c *contract.Contract, s *supplement.Supplement) {
				m.repo.EXPECT().Get(gomock.Any(), s.ID).Return(s, nil)
				m.repo.EXPECT().BeginConsume(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().Contract(gomock.Any(), c.ID).Return(c, nil)
				m.tx.EXPECT().CountByContract(gomock.Any(), c.ID).Return(1, nil)
				m.tx.EXPECT().SaveContract(gomock.Any(), c).Return(nil)
				m.tx.EXPECT().DeleteSupplement(gomock.Any(), s.ID).Return(supplement.ErrNotFound)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: supplement.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)
			c := newContract()
			s := tt.sup(c.ID)
			tt.setupMock(m, c, s)

			got, err := svc.Consume(context.Background(), admin, s.ID)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Empty(t, m.audit.Entries)

				return
			}

			require.NoError(t, err)
			tt.check(t, got, m)
		})
	}
}
