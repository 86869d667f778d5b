package quests

import "time"

type SignalKind int

const (
	SignalMessage SignalKind = iota
	SignalCommand
	SignalReaction
	SignalVoice
	SignalHelp
)

func (k SignalKind) String() string {
	switch k {
	case SignalMessage:
		return "message"
	case SignalCommand:
		return "command"
	case SignalReaction:
		return "reaction"
	case SignalVoice:
		return "voice"
	case SignalHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Signal is one piece of member activity. Only the fields relevant to Kind
// are read.
type Signal struct {
	Kind      SignalKind
	ChannelID string
	Command   string
	Seconds   int64
	At        time.Time
}

func Message(channelID string, at time.Time) Signal {
	return Signal{Kind: SignalMessage, ChannelID: channelID, At: at}
}

func Command(name string, at time.Time) Signal {
	return Signal{Kind: SignalCommand, Command: name, At: at}
}

func Reaction(at time.Time) Signal {
	return Signal{Kind: SignalReaction, At: at}
}

func Voice(seconds int64, at time.Time) Signal {
	return Signal{Kind: SignalVoice, Seconds: seconds, At: at}
}

func Help(at time.Time) Signal {
	return Signal{Kind: SignalHelp, At: at}
}
