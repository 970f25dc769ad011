// common/status_messages.go

package common

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MessageType defines the type of status message
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageWarning
	MessageError
)

// StatusMessage is one line in the status panel
type StatusMessage struct {
	Type    MessageType
	Content string
	Time    time.Time
}

// StatusMessagesContainer shows what the save workflows did, newest last
type StatusMessagesContainer struct {
	widget.BaseWidget
	messages  []StatusMessage
	container *fyne.Container
	scroll    *container.Scroll
	maxItems  int
}

// NewStatusMessagesContainer creates a panel keeping at most maxItems messages
func NewStatusMessagesContainer(maxItems int) *StatusMessagesContainer {
	if maxItems <= 0 {
		maxItems = 200
	}
	smc := &StatusMessagesContainer{maxItems: maxItems}
	smc.ExtendBaseWidget(smc)
	smc.container = container.NewVBox()
	smc.scroll = container.NewVScroll(smc.container)
	smc.scroll.SetMinSize(fyne.NewSize(0, 120))
	return smc
}

// CreateRenderer links this widget to its renderer
func (smc *StatusMessagesContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(smc.scroll)
}

// AddMessage appends a message; call it on the UI goroutine
func (smc *StatusMessagesContainer) AddMessage(messageType MessageType, content string) {
	msg := StatusMessage{Type: messageType, Content: content, Time: time.Now()}
	smc.messages = append(smc.messages, msg)

	icon := theme.InfoIcon()
	switch messageType {
	case MessageWarning:
		icon = theme.WarningIcon()
	case MessageError:
		icon = theme.ErrorIcon()
	}

	label := widget.NewLabel(msg.Time.Format("15:04:05") + "  " + content)
	label.TextStyle.Bold = messageType != MessageInfo
	smc.container.Add(container.NewHBox(widget.NewIcon(icon), label))

	if len(smc.messages) > smc.maxItems {
		smc.messages = smc.messages[1:]
		smc.container.Remove(smc.container.Objects[0])
	}
	smc.scroll.ScrollToBottom()
	smc.Refresh()
}

// AddInfoMessage adds an information message
func (smc *StatusMessagesContainer) AddInfoMessage(content string) {
	smc.AddMessage(MessageInfo, content)
}

// AddWarningMessage adds a warning message
func (smc *StatusMessagesContainer) AddWarningMessage(content string) {
	smc.AddMessage(MessageWarning, content)
}

// AddErrorMessage adds an error message
func (smc *StatusMessagesContainer) AddErrorMessage(content string) {
	smc.AddMessage(MessageError, content)
}

// GetMessages returns the kept messages
func (smc *StatusMessagesContainer) GetMessages() []StatusMessage {
	return smc.messages
}
