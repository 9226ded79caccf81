package chat

type Chat struct{}
