package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/repository/postgres"
	"github.com/jmontes/skillswap-web/internal/service"
	"github.com/jmontes/skillswap-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	availabilityService := service.NewAvailabilityService(repos.Availability)
	ctx := context.Background()

	mentor, _ := testutil.NewUserBuilder().WithRole(domain.RoleMentor).Build(t, testDB.DB)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)

	tests := []struct {
		name      string
		startTime string
		endTime   string
		wantErr   error
	}{
		{"valid one hour slot", "14:00", "15:00", nil},
		{"valid thirty minute slot", "09:30", "10:00", nil},
		{"start off the grid", "14:05", "15:00", domain.ErrInvalidSlotTime},
		{"end off the grid", "14:00", "15:15", domain.ErrInvalidSlotTime},
		{"malformed start", "2pm", "15:00", domain.ErrInvalidSlotTime},
		{"under thirty minutes", "14:00", "14:20", domain.ErrSlotTooShort},
		{"zero length", "14:00", "14:00", domain.ErrSlotTooShort},
		{"end before start", "15:00", "14:00", domain.ErrSlotTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := availabilityService.Create(ctx, service.CreateSlotInput{
				MentorID:  mentor.ID,
				Date:      tomorrow,
				StartTime: tt.startTime,
				EndTime:   tt.endTime,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, mentor.ID, slot.MentorID)
			assert.False(t, slot.IsBooked)
		})
	}
}

func TestAvailabilityService_ListForMentor(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	availabilityService := service.NewAvailabilityService(repos.Availability)
	ctx := context.Background()

	mentor, _ := testutil.NewUserBuilder().WithRole(domain.RoleMentor).Build(t, testDB.DB)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	lastWeek := time.Now().UTC().AddDate(0, 0, -7)

	open := testutil.NewSlotBuilder().WithMentor(mentor).WithDate(tomorrow).WithTimes("14:00", "15:00").Build(t, testDB.DB)
	booked := testutil.NewSlotBuilder().WithMentor(mentor).WithDate(tomorrow).WithTimes("16:00", "17:00").Booked().Build(t, testDB.DB)
	testutil.NewSlotBuilder().WithMentor(mentor).WithDate(lastWeek).WithTimes("14:00", "15:00").Build(t, testDB.DB)

	t.Run("hides booked and past slots by default", func(t *testing.T) {
		slots, err := availabilityService.ListForMentor(ctx, mentor.ID, false)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, open.ID, slots[0].ID)
	})

	t.Run("includes booked slots on request", func(t *testing.T) {
		slots, err := availabilityService.ListForMentor(ctx, mentor.ID, true)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, open.ID, slots[0].ID)
		assert.Equal(t, booked.ID, slots[1].ID)
	})
}

func TestAvailabilityService_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	availabilityService := service.NewAvailabilityService(repos.Availability)
	ctx := context.Background()

	mentor, _ := testutil.NewUserBuilder().WithRole(domain.RoleMentor).Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().WithRole(domain.RoleMentor).Build(t, testDB.DB)

	t.Run("owner deletes an open slot", func(t *testing.T) {
		slot := testutil.NewSlotBuilder().WithMentor(mentor).Build(t, testDB.DB)
		require.NoError(t, availabilityService.Delete(ctx, slot.ID, mentor.ID))

		err := availabilityService.Delete(ctx, slot.ID, mentor.ID)
		assert.ErrorIs(t, err, service.ErrSlotNotFound)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		slot := testutil.NewSlotBuilder().WithMentor(mentor).WithTimes("10:00", "11:00").Build(t, testDB.DB)
		err := availabilityService.Delete(ctx, slot.ID, other.ID)
		assert.ErrorIs(t, err, domain.ErrNotSlotOwner)
	})

	t.Run("booked slot cannot be deleted", func(t *testing.T) {
		slot := testutil.NewSlotBuilder().WithMentor(mentor).WithTimes("12:00", "13:00").Booked().Build(t, testDB.DB)
		err := availabilityService.Delete(ctx, slot.ID, mentor.ID)
		assert.ErrorIs(t, err, domain.ErrSlotBooked)
	})
}
