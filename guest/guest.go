package guest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	frond "github.com/frondui/frond"
	"github.com/frondui/frond/app"
	"github.com/frondui/frond/errors"
	"github.com/frondui/frond/host"
	"github.com/frondui/frond/nav"
	"github.com/frondui/frond/vdom"
)

const abiVersion = 0

const (
	exportABI    = "frond_abi"
	exportAlloc  = "frond_alloc"
	exportInit   = "frond_init"
	exportUpdate = "frond_update"
	exportView   = "frond_view"
)

// DOMEvent is the message produced by guest-declared listeners. It crosses
// into the guest as {"name":...,"type":...,"value":...}.
type DOMEvent struct {
	Event host.Event
	Name  string
}

// Guest is one instantiated WebAssembly application. It is not safe for
// concurrent use; like the runtime it feeds, it lives on the UI scheduler.
type Guest struct {
	ctx    context.Context
	module api.Module
	mem    api.Memory
	alloc  api.Function
	update api.Function
	view   api.Function
	stack  []uint64
}

// Load compiles and instantiates a guest module, verifies the ABI surface
// and version, and runs the guest's init. The context is retained for calls
// the runtime makes on the guest's behalf.
func Load(ctx context.Context, rt wazero.Runtime, wasmBytes []byte) (*Guest, error) {
	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseBootstrap, errors.KindInvalidData, err, "compile guest module")
	}
	module, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseBootstrap, errors.KindInvalidData, err, "instantiate guest module")
	}

	g := &Guest{
		ctx:    ctx,
		module: module,
		stack:  make([]uint64, 4),
	}
	if g.mem = module.Memory(); g.mem == nil {
		_ = module.Close(ctx)
		return nil, errors.InvalidData(errors.PhaseBootstrap, "guest exports no memory")
	}
	for _, name := range []string{exportABI, exportAlloc, exportInit, exportUpdate, exportView} {
		if module.ExportedFunction(name) == nil {
			_ = module.Close(ctx)
			return nil, errors.NotFound(errors.PhaseBootstrap, "guest export", name)
		}
	}
	g.alloc = module.ExportedFunction(exportAlloc)
	g.update = module.ExportedFunction(exportUpdate)
	g.view = module.ExportedFunction(exportView)

	version, err := g.callI32(ctx, module.ExportedFunction(exportABI))
	if err != nil {
		_ = module.Close(ctx)
		return nil, errors.Wrap(errors.PhaseBootstrap, errors.KindInvalidData, err, "guest abi call trapped")
	}
	if version != abiVersion {
		_ = module.Close(ctx)
		return nil, errors.Unsupported(errors.PhaseBootstrap, fmt.Sprintf("guest ABI version %d", version))
	}

	status, err := g.callI32(ctx, module.ExportedFunction(exportInit))
	if err != nil {
		_ = module.Close(ctx)
		return nil, errors.Wrap(errors.PhaseBootstrap, errors.KindInvalidData, err, "guest init trapped")
	}
	if status != 0 {
		_ = module.Close(ctx)
		return nil, errors.InvalidData(errors.PhaseBootstrap, fmt.Sprintf("guest init failed with status %d", status))
	}

	Logger().Debug("guest loaded", zap.String("module", module.Name()))
	return g, nil
}

// Close releases the guest instance.
func (g *Guest) Close(ctx context.Context) error {
	if g.module == nil {
		return nil
	}
	err := g.module.Close(ctx)
	g.module = nil
	g.mem = nil
	g.alloc = nil
	g.update = nil
	g.view = nil
	return err
}

// Config adapts the guest into an application configuration: update encodes
// messages through the ABI, view decodes the guest tree.
func (g *Guest) Config(h host.Host, mount host.Node) app.Config {
	return app.Config{
		Update: g.hostUpdate,
		View:   g.hostView,
		Mount:  mount,
		Host:   h,
	}
}

// AfterMount is a ready-made after-mount hook installing the guest handle as
// the model.
func (g *Guest) AfterMount(_ nav.Location, _ *app.Orders) app.AfterMount {
	return app.AfterMount{Model: g}
}

// Update feeds one encoded message to the guest and returns its render
// directive.
func (g *Guest) Update(ctx context.Context, payload []byte) (app.RenderDirective, error) {
	ptr, err := g.writePayload(ctx, payload)
	if err != nil {
		return app.Skip, err
	}
	g.stack[0] = uint64(ptr)
	g.stack[1] = uint64(len(payload))
	if err := g.update.CallWithStack(ctx, g.stack[:2]); err != nil {
		return app.Skip, errors.Wrap(errors.PhaseDispatch, errors.KindInvalidData, err, "guest update trapped")
	}
	switch g.stack[0] {
	case 0:
		return app.Render, nil
	case 1:
		return app.ForceRenderNow, nil
	case 2:
		return app.Skip, nil
	}
	return app.Skip, errors.InvalidData(errors.PhaseDispatch,
		fmt.Sprintf("guest update returned directive %d", int32(g.stack[0])))
}

// View reads and decodes the guest's current tree.
func (g *Guest) View(ctx context.Context) ([]vdom.Node, error) {
	g.stack[0] = 0
	if err := g.view.CallWithStack(ctx, g.stack[:1]); err != nil {
		return nil, errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "guest view trapped")
	}
	packed := g.stack[0]
	raw, ok := g.mem.Read(uint32(packed>>32), uint32(packed))
	if !ok {
		return nil, errors.InvalidData(errors.PhaseRender, "guest view returned out-of-range tree")
	}
	return decodeTree(raw)
}

func (g *Guest) writePayload(ctx context.Context, b []byte) (uint32, error) {
	g.stack[0] = uint64(len(b))
	if err := g.alloc.CallWithStack(ctx, g.stack[:1]); err != nil {
		return 0, errors.Wrap(errors.PhaseDispatch, errors.KindInvalidData, err, "guest alloc trapped")
	}
	ptr := uint32(g.stack[0])
	if !g.mem.Write(ptr, b) {
		return 0, errors.InvalidData(errors.PhaseDispatch, "guest alloc returned out-of-range pointer")
	}
	return ptr, nil
}

func (g *Guest) callI32(ctx context.Context, fn api.Function) (int32, error) {
	g.stack[0] = 0
	if err := fn.CallWithStack(ctx, g.stack[:1]); err != nil {
		return 0, err
	}
	return int32(g.stack[0]), nil
}

// hostUpdate is the app.UpdateFn bridging into the guest. Guest failures are
// logged and skipped rather than propagated: one bad message must not take
// the whole runtime down.
func (g *Guest) hostUpdate(msg frond.Msg, _ frond.Model, o *app.Orders) {
	payload, err := encodeMsg(msg)
	if err != nil {
		Logger().Warn("guest message not encodable", zap.Error(err))
		o.Skip()
		return
	}
	directive, err := g.Update(g.ctx, payload)
	if err != nil {
		Logger().Error("guest update failed", zap.Error(err))
		o.Skip()
		return
	}
	switch directive {
	case app.ForceRenderNow:
		o.ForceRenderNow()
	case app.Skip:
		o.Skip()
	default:
		o.Render()
	}
}

// hostView is the app.ViewFn bridging into the guest. A failed view renders
// empty rather than stale.
func (g *Guest) hostView(frond.Model) []vdom.Node {
	nodes, err := g.View(g.ctx)
	if err != nil {
		Logger().Error("guest view failed", zap.Error(err))
		return nil
	}
	return nodes
}

func encodeMsg(msg frond.Msg) ([]byte, error) {
	switch v := msg.(type) {
	case DOMEvent:
		return json.Marshal(struct {
			Name  string `json:"name"`
			Type  string `json:"type"`
			Value string `json:"value"`
		}{v.Name, v.Event.Type, v.Event.Value})
	case json.RawMessage:
		return v, nil
	case []byte:
		return v, nil
	default:
		return nil, errors.Unsupported(errors.PhaseDispatch, fmt.Sprintf("guest message type %T", msg))
	}
}
