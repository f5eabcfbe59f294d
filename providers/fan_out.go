package providers

// IFanOutProvider defines internal pub-sub channel for switch state changes.
type IFanOutProvider interface {
	SubscribeStateUpdates() (int64, chan *CharacteristicUpdate)
	UnSubscribeStateUpdates(int64)
	ChannelInStateUpdates() chan *CharacteristicUpdate
	Close()
}
