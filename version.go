package baristabot

// Version of the module. Release builds override it with
// -ldflags "-X github.com/aretw0/baristabot.Version=v1.2.3".
var Version = "0.1.0"
