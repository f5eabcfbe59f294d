package providers

// AccessoryCategorySwitch is the bridge category for switch accessories.
const AccessoryCategorySwitch = 8

// Accessory has data describing a single switch, as it's known to the bridge.
type Accessory struct {
	ID           string        `yaml:"id" json:"id"`
	Name         string        `yaml:"name" json:"name"`
	Category     int           `yaml:"category" json:"category"`
	Manufacturer string        `yaml:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Model        string        `yaml:"model,omitempty" json:"model,omitempty"`
	Serial       string        `yaml:"serial,omitempty" json:"serial,omitempty"`
	On           bool          `yaml:"on" json:"on"`
	Context      *SwitchConfig `yaml:"context,omitempty" json:"-"`
}

// CharacteristicUpdate is sent every time visible switch state changes.
type CharacteristicUpdate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	On   bool   `json:"on"`
}

// IBridgeProvider defines home-automation bridge which surfaces switches
// to the end-user control surfaces.
type IBridgeProvider interface {
	RegisterAccessory(*Accessory) error
	UnregisterAccessory(id string) error
	UpdateAccessory(*Accessory) error
	NotifyCharacteristicChanged(id string, value bool)
	CachedAccessories() []*Accessory
	Accessories() []*Accessory
	Subscribe() (int64, chan *CharacteristicUpdate)
	Unsubscribe(id int64)
}
