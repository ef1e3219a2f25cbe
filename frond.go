package frond

// Msg is a local application message. Applications define their own message
// types; the runtime never inspects them beyond routing through update.
type Msg interface{}

// GlobalMsg is an app-wide message carried on the optional global channel.
// Applications that never configure a sink never see one.
type GlobalMsg interface{}

// Model is the application state. Applications pass a pointer-typed value
// and mutate through it inside update; the runtime only threads it between
// update, view, and window-subscription evaluation.
type Model interface{}
