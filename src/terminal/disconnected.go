package terminal

// -----------------------------------------------------------------------------
// DisconnectedTerminal
//
// Backend for the "none" mode: no terminal is reachable on this host. Every
// call fails with the native codes an unreachable terminal reports, so the
// bridge stays up and answers every command with a connection error.
// -----------------------------------------------------------------------------

type DisconnectedTerminal struct{}

func NewDisconnectedTerminal() *DisconnectedTerminal {
	return &DisconnectedTerminal{}
}

// -----------------------------------------------------------------------------

func (t *DisconnectedTerminal) Initialize() error {
	return &Error{Code: -10003, Desc: "IPC initialize failed"}
}

func (t *DisconnectedTerminal) Login(login int64, password, server string) error {
	return &Error{Code: -10004, Desc: "No IPC connection"}
}

func (t *DisconnectedTerminal) Shutdown() {}

func (t *DisconnectedTerminal) AccountInfo() (*AccountInfo, error) {
	return nil, &Error{Code: -10004, Desc: "No IPC connection"}
}

func (t *DisconnectedTerminal) SymbolsGet() ([]SymbolInfo, error) {
	return nil, &Error{Code: -10004, Desc: "No IPC connection"}
}

func (t *DisconnectedTerminal) CopyRatesFromPos(symbol string, timeframe, start, count int) ([]Rate, error) {
	return nil, &Error{Code: -10004, Desc: "No IPC connection"}
}

func (t *DisconnectedTerminal) SymbolInfoTick(symbol string) (*Tick, error) {
	return nil, &Error{Code: -10004, Desc: "No IPC connection"}
}

func (t *DisconnectedTerminal) OrderSend(req TradeRequest) (*TradeResult, error) {
	return nil, &Error{Code: -10004, Desc: "No IPC connection"}
}

func (t *DisconnectedTerminal) PositionsGet() ([]Position, error) {
	return nil, &Error{Code: -10004, Desc: "No IPC connection"}
}

func (t *DisconnectedTerminal) PositionGet(ticket uint64) (*Position, error) {
	return nil, &Error{Code: -10004, Desc: "No IPC connection"}
}
