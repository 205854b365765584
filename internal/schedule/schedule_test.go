package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/contratos/internal/schedule"
)

const ttl = 5 * time.Minute

func TestScheduler_RunNow(t *testing.T) {
	type testCase struct {
		name      string
		job       string
		setupMock func(l *schedule.MockLocker, s *schedule.MockSweeper, released *bool)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "RunsUnderLock",
			job:  schedule.JobExpiring,
			setupMock: func(l *schedule.MockLocker, s *schedule.MockSweeper, released *bool) {
				gomock.InOrder(
					l.EXPECT().Lock(gomock.Any(), "sweep:expiring", ttl).Return(func() { *released = true }, nil),
					s.EXPECT().SweepExpiring(gomock.Any()).Return(2, nil),
				)
			},
		},
		{
			name: "LockHeldElsewhere",
			job:  schedule.JobExpired,
			setupMock: func(l *schedule.MockLocker, _ *schedule.MockSweeper, _ *bool) {
				l.EXPECT().Lock(gomock.Any(), "sweep:expired", ttl).Return(nil, schedule.ErrLocked)
			},
			wantErr: schedule.ErrLocked,
		},
		{
			name: "SweepErrorReleasesLock",
			job:  schedule.JobArchive,
			setupMock: func(l *schedule.MockLocker, s *schedule.MockSweeper, released *bool) {
				l.EXPECT().Lock(gomock.Any(), "sweep:archive", ttl).Return(func() { *released = true }, nil)
				s.EXPECT().ArchiveRead(gomock.Any()).Return(int64(0), errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
		{
			name:      "UnknownJob",
			job:       "reindex",
			setupMock: func(*schedule.MockLocker, *schedule.MockSweeper, *bool) {},
			wantErr:   schedule.ErrUnknownJob,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			locker := schedule.NewMockLocker(ctrl)
			sweeper := schedule.NewMockSweeper(ctrl)

			var released bool

			tt.setupMock(locker, sweeper, &released)

			s, err := schedule.New(locker, ttl, schedule.SweepJobs(sweeper, schedule.Specs{
				Expiring: "0 6 * * *",
				Expired:  "5 0 * * *",
			})...)
			require.NoError(t, err)

			err = s.RunNow(context.Background(), tt.job)

			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.True(t, released)
			case errors.Is(tt.wantErr, schedule.ErrLocked), errors.Is(tt.wantErr, schedule.ErrUnknownJob):
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.True(t, released)
			}
		})
	}
}

func TestNew_InvalidSpec(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := schedule.New(schedule.NewMockLocker(ctrl), ttl, schedule.Job{Name: "x", Spec: "every day", Run: func(context.Context) error { return nil }})
	assert.Error(t, err)
}
