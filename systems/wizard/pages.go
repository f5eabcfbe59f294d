package wizard

const (
	// TypeInterface is the page type for every dialogue step.
	TypeInterface = "Interface"
	// TypeComplete is returned once configuration was saved.
	TypeComplete = "Complete"
	// TypeTerminate is the request type which aborts the dialogue.
	TypeTerminate = "Terminate"

	interfaceInstruction = "instruction"
	interfaceList        = "list"
	interfaceInput       = "input"

	placeholderUnchanged = "Leave blank if unchanged"
)

// Operation choices order.
const (
	choiceAdd = iota
	choiceModify
	choiceRemove
)

// Request has data sent by the user for the current step.
type Request struct {
	Type     string    `json:"type"`
	Response *Response `json:"response"`
}

// Response has user selections or inputs.
type Response struct {
	Selections []int             `json:"selections,omitempty"`
	Inputs     map[string]string `json:"inputs,omitempty"`
}

// Item is a single list entry or input field.
type Item struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Page describes a single dialogue page.
type Page struct {
	Type           string  `json:"type"`
	Interface      string  `json:"interface,omitempty"`
	Title          string  `json:"title,omitempty"`
	Detail         string  `json:"detail,omitempty"`
	ShowNextButton bool    `json:"showNextButton,omitempty"`
	Items          []*Item `json:"items,omitempty"`
}

// Input field definitions with placeholders for new switches.
var switchFields = []*Item{
	{ID: "on_cmd", Title: "CMD to Turn On", Placeholder: "wakeonlan XX:XX:XX:XX:XX:XX"},
	{ID: "off_cmd", Title: "CMD to Turn Off", Placeholder: "net rpc shutdown -I XXX.XXX.XXX.XXX -U user%password"},
	{ID: "state_cmd", Title: "CMD to Check ON State",
		Placeholder: "ping -c 2 -W 1 XXX.XXX.XXX.XXX | grep -i '2 received'"},
	{ID: "polling", Title: "Enable Polling (true/false)", Placeholder: "false"},
	{ID: "interval", Title: "Polling Interval", Placeholder: "1"},
	{ID: "manufacturer", Title: "Manufacturer", Placeholder: "Default-Manufacturer"},
	{ID: "model", Title: "Model", Placeholder: "Default-Model"},
	{ID: "serial", Title: "Serial", Placeholder: "Default-SerialNumber"},
}

func instructionPage(title, detail string) *Page {
	return &Page{
		Type:           TypeInterface,
		Interface:      interfaceInstruction,
		Title:          title,
		Detail:         detail,
		ShowNextButton: true,
	}
}

func listPage(title string, entries []string) *Page {
	items := make([]*Item, 0, len(entries))
	for _, v := range entries {
		items = append(items, &Item{Title: v})
	}

	return &Page{
		Type:      TypeInterface,
		Interface: interfaceList,
		Title:     title,
		Items:     items,
	}
}

func welcomePage() *Page {
	return instructionPage("Before You Start...",
		"Please make sure the service is running with privileges required by the commands.")
}

func operationsPage() *Page {
	return listPage("What do you want to do?",
		[]string{"Add New Switch", "Modify Existing Switch", "Remove Existing Switch"})
}

func newSwitchPage() *Page {
	return &Page{
		Type:      TypeInterface,
		Interface: interfaceInput,
		Title:     "New Switch",
		Items:     []*Item{{ID: "name", Title: "Name (Required)", Placeholder: "HTPC"}},
	}
}

// Switch fields page. Existing switches get "keep" placeholders.
func fieldsPage(name string, existing bool) *Page {
	items := make([]*Item, 0, len(switchFields))
	for _, v := range switchFields {
		item := *v
		if existing {
			item.Placeholder = placeholderUnchanged
		}
		items = append(items, &item)
	}

	return &Page{
		Type:      TypeInterface,
		Interface: interfaceInput,
		Title:     name,
		Items:     items,
	}
}

func errorPage(detail string) *Page {
	return instructionPage("Error", detail)
}
