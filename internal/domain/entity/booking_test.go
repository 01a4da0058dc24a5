package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsValidBookingStatus(t *testing.T) {
	for _, status := range BookingStatuses {
		assert.True(t, IsValidBookingStatus(string(status)), string(status))
	}

	assert.False(t, IsValidBookingStatus("DONE"))
	assert.False(t, IsValidBookingStatus("pending"))
	assert.False(t, IsValidBookingStatus(""))
}

func TestBookingIsTerminal(t *testing.T) {
	cases := []struct {
		status   BookingStatus
		terminal bool
	}{
		{BookingStatusPending, false},
		{BookingStatusConfirmed, false},
		{BookingStatusAssigned, false},
		{BookingStatusInProgress, false},
		{BookingStatusCompleted, true},
		{BookingStatusCancelled, true},
		{BookingStatusRefunded, false},
	}

	for _, c := range cases {
		b := &Booking{Status: c.status}
		assert.Equal(t, c.terminal, b.IsTerminal(), string(c.status))
	}
}

func TestBookingOwnershipHelpers(t *testing.T) {
	clientID := uuid.New()
	technicianID := uuid.New()

	b := &Booking{ClientID: clientID, TechnicianID: &technicianID}
	assert.True(t, b.IsOwnedBy(clientID))
	assert.False(t, b.IsOwnedBy(technicianID))
	assert.True(t, b.IsAssignedTo(technicianID))
	assert.False(t, b.IsAssignedTo(clientID))

	unassigned := &Booking{ClientID: clientID}
	assert.False(t, unassigned.IsAssignedTo(technicianID))
}

func TestIsValidModerationAction(t *testing.T) {
	assert.True(t, IsValidModerationAction("approve"))
	assert.True(t, IsValidModerationAction("deny"))
	assert.False(t, IsValidModerationAction("Approve"))
	assert.False(t, IsValidModerationAction("reject"))
	assert.False(t, IsValidModerationAction(""))
}

func TestRoleIdentityHelpers(t *testing.T) {
	admin := Identity{UserID: uuid.New(), RoleID: RoleIDAdmin}
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsClient())

	technician := Identity{UserID: uuid.New(), RoleID: RoleIDTechnician}
	assert.True(t, technician.IsTechnician())

	client := Identity{UserID: uuid.New(), RoleID: RoleIDClient}
	assert.True(t, client.IsClient())

	assert.Equal(t, RoleAdmin, RoleNameByID(RoleIDAdmin))
	assert.Equal(t, "", RoleNameByID(99))
}
