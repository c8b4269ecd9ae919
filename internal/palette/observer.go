package palette

// Observer receives lifecycle notifications from the dialog.
type Observer interface {
	OnOpen()
	// OnClose reports the row that was invoked, if any.
	OnClose(invoked *Result)
	OnDataReady(entries int)
	OnInPageSearch(keyword string)
	OnEvent(ev Event)
}

// ObserverFuncs adapts optional functions to Observer. Nil fields are
// skipped.
type ObserverFuncs struct {
	Open         func()
	Close        func(invoked *Result)
	DataReady    func(entries int)
	InPageSearch func(keyword string)
	Event        func(ev Event)
}

func (o ObserverFuncs) OnOpen() {
	if o.Open != nil {
		o.Open()
	}
}

func (o ObserverFuncs) OnClose(invoked *Result) {
	if o.Close != nil {
		o.Close(invoked)
	}
}

func (o ObserverFuncs) OnDataReady(entries int) {
	if o.DataReady != nil {
		o.DataReady(entries)
	}
}

func (o ObserverFuncs) OnInPageSearch(keyword string) {
	if o.InPageSearch != nil {
		o.InPageSearch(keyword)
	}
}

func (o ObserverFuncs) OnEvent(ev Event) {
	if o.Event != nil {
		o.Event(ev)
	}
}

// Host is the page the overlay is drawn on.
type Host interface {
	// SelectedText returns the current text selection.
	SelectedText() (string, error)
	FreezeScroll()
	UnfreezeScroll()
	// Embedded reports whether the host runs inside another host, in
	// which case the overlay never opens.
	Embedded() bool
}
