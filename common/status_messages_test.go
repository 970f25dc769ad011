package common

import (
	"fmt"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMessagesCapped(t *testing.T) {
	test.NewTempApp(t)

	smc := NewStatusMessagesContainer(3)
	for i := 0; i < 5; i++ {
		smc.AddInfoMessage(fmt.Sprintf("saved %d", i))
	}
	smc.AddErrorMessage("backup failed")

	msgs := smc.GetMessages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "saved 3", msgs[0].Content)
	assert.Equal(t, MessageError, msgs[2].Type)
	assert.Equal(t, "backup failed", msgs[2].Content)
}
