package emailsvc

import (
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/lvillarreal/educrm/core"
)

type consoleService struct {
	defaultFrom   mail.Address
	subjPrefix    string
	disableOutput bool

	mu   sync.Mutex
	sent []core.EmailMessage
}

var _ core.EmailService = (*consoleService)(nil)

// NewConsoleService writes outgoing mail to the process log. Used in DEV.
func NewConsoleService(conf *core.Config) *consoleService {
	return &consoleService{
		defaultFrom: conf.DefaultFrom(),
		subjPrefix:  "[" + conf.AppName + "] ",
	}
}

// NewConsoleServiceMock sends synchronously with output disabled and records
// the sent messages for assertions. Used in tests.
func NewConsoleServiceMock(conf *core.Config) *consoleService {
	svc := NewConsoleService(conf)
	svc.disableOutput = true
	return svc
}

func (svc *consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		if svc.disableOutput {
			svc.sendMessage(msg) // run synchronously in tests
		} else {
			go svc.sendMessage(msg)
		}
	}
}

// SentMessages returns the messages recorded so far.
func (svc *consoleService) SentMessages() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]core.EmailMessage(nil), svc.sent...)
}

func (svc *consoleService) sendMessage(msg *core.EmailMessage) {
	if !msg.HasRecipients() || !msg.HasContent() {
		return
	}
	if !svc.disableOutput {
		body := new(strings.Builder)
		_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.defaultFrom.String())
		_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
		_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
		_, _ = fmt.Fprintf(body, "To: %s\r\n\r\n", svc.joinAddresses(msg.To))
		_, _ = fmt.Fprintf(body, "%s\r\n", msg.Body)
		log.Println(body.String())
	}
	svc.mu.Lock()
	svc.sent = append(svc.sent, *msg)
	svc.mu.Unlock()
}

func (svc *consoleService) joinAddresses(addrs []mail.Address) string {
	toJoin := make([]string, 0, len(addrs))
	for _, a := range addrs {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}
