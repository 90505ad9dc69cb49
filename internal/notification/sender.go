package notification

import "fmt"

// Sender composes an invite for one delivery channel. Implementations are
// stateless; actual delivery happens outside this process and its outcome
// is never waited on.
type Sender interface {
	Channel() Channel
	Compose(inv Invite) Notification
}

type emailSender struct{}

func (emailSender) Channel() Channel { return ChannelEmail }

func (emailSender) Compose(inv Invite) Notification {
	return Notification{
		GroupID:   inv.GroupID,
		Channel:   ChannelEmail,
		Recipient: inv.Recipient,
		Subject:   fmt.Sprintf("Join %s on WeSplit", inv.GroupName),
		Body: fmt.Sprintf("Hi %s! %s invited you to join %q on WeSplit to split group expenses and settle up easily.",
			inv.RecipientName, inv.InviterName, inv.GroupName),
	}
}

type smsSender struct{}

func (smsSender) Channel() Channel { return ChannelSMS }

func (smsSender) Compose(inv Invite) Notification {
	return Notification{
		GroupID:   inv.GroupID,
		Channel:   ChannelSMS,
		Recipient: inv.Recipient,
		Body: fmt.Sprintf("%s invited you to join %q on WeSplit. Track shared expenses and settle up.",
			inv.InviterName, inv.GroupName),
	}
}

type whatsappSender struct{}

func (whatsappSender) Channel() Channel { return ChannelWhatsApp }

func (whatsappSender) Compose(inv Invite) Notification {
	return Notification{
		GroupID:   inv.GroupID,
		Channel:   ChannelWhatsApp,
		Recipient: inv.Recipient,
		Body: fmt.Sprintf("Hi %s! You've been invited to join %q on WeSplit. Split expenses with friends, track who owes what and settle up hassle-free.",
			inv.RecipientName, inv.GroupName),
	}
}

type shareSender struct{}

func (shareSender) Channel() Channel { return ChannelShare }

func (shareSender) Compose(inv Invite) Notification {
	return Notification{
		GroupID: inv.GroupID,
		Channel: ChannelShare,
		Body:    fmt.Sprintf("Join %q on WeSplit to split group expenses.", inv.GroupName),
	}
}

// senders maps each channel to its composer.
var senders = map[Channel]Sender{
	ChannelEmail:    emailSender{},
	ChannelSMS:      smsSender{},
	ChannelWhatsApp: whatsappSender{},
	ChannelShare:    shareSender{},
}
