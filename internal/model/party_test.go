package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParty() *Party {
	return &Party{
		Code:   "ROOM1",
		HostID: "conn-1",
		Members: []PartyMember{
			{ConnID: "conn-1", Name: "alice"},
			{ConnID: "conn-2", Name: "bob"},
		},
	}
}

func TestGetMember(t *testing.T) {
	p := testParty()

	m := p.GetMember("conn-2")
	require.NotNil(t, m)
	assert.Equal(t, "bob", m.Name)

	assert.Nil(t, p.GetMember("conn-9"))
}

func TestGetMemberReturnsMutablePointer(t *testing.T) {
	p := testParty()

	p.GetMember("conn-1").Finished = true

	assert.True(t, p.Members[0].Finished)
}

func TestHost(t *testing.T) {
	p := testParty()

	host := p.Host()
	require.NotNil(t, host)
	assert.Equal(t, "alice", host.Name)

	p.HostID = "conn-9"
	assert.Nil(t, p.Host())
}

func TestAllFinished(t *testing.T) {
	p := testParty()
	assert.False(t, p.AllFinished())

	p.Members[0].Finished = true
	assert.False(t, p.AllFinished())

	p.Members[1].Finished = true
	assert.True(t, p.AllFinished())
}

func TestAllFinishedEmptyParty(t *testing.T) {
	p := &Party{Code: "ROOM1"}
	assert.False(t, p.AllFinished())
}
