package hostimport

import (
	"fmt"
	"path/filepath"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/nocturne-lang/nocturne/internal/checker"
	ntypes "github.com/nocturne-lang/nocturne/internal/types"
)

// grpcStatusErrorShape builds the GrpcStatusError object once: a `code`
// property narrowed to the closed union of gRPC's well-known status code
// names (the same set google.golang.org/grpc/codes.Code enumerates) plus
// a plain `message` string, mirroring what status.FromError exposes at
// runtime.
func grpcStatusErrorShape(a *ntypes.Arena) ntypes.Idx {
	members := make([]ntypes.Idx, 0, codes.Unauthenticated+1)
	for c := codes.OK; c <= codes.Unauthenticated; c++ {
		members = append(members, a.NewLiteralString(c.String()))
	}
	return a.NewObject(
		ntypes.Prop{Name: "code", Type: a.NewUnion(members...)},
		ntypes.Prop{Name: "message", Type: a.NewPrimitive(ntypes.String)},
	)
}

// ImportProtoFile parses dep.Proto with protoparse (no running server, no
// network I/O — purely descriptor-driven) and installs a Scheme per
// message type and per RPC method named by dep.Bind, or every message/
// service declared in the file when BindAll is set.
func ImportProtoFile(a *ntypes.Arena, ctx *checker.Context, dep Dep) error {
	dir, file := filepath.Split(dep.Proto)
	parser := protoparse.Parser{ImportPaths: []string{dir}}
	fds, err := parser.ParseFiles(file)
	if err != nil {
		return fmt.Errorf("parsing proto file %s: %w", dep.Proto, err)
	}
	if len(fds) == 0 {
		return fmt.Errorf("parsing proto file %s: no file descriptor produced", dep.Proto)
	}
	fd := fds[0]
	conv := &protoConverter{a: a}

	if dep.BindAll {
		for _, mt := range fd.GetMessageTypes() {
			ctx.BindValue(dep.As+capitalize(mt.GetName()), ntypes.Mono(conv.convertMessage(mt)))
		}
		for _, sd := range fd.GetServices() {
			for _, m := range sd.GetMethods() {
				ctx.BindValue(dep.As+capitalize(m.GetName()), ntypes.Mono(conv.convertMethod(m)))
			}
		}
		return nil
	}

	for _, spec := range dep.Bind {
		switch {
		case spec.Message != "":
			mt := fd.FindMessage(qualify(fd, spec.Message))
			if mt == nil {
				return fmt.Errorf("%s: no such message %s", dep.Proto, spec.Message)
			}
			ctx.BindValue(bindName(spec.As, spec.Message), ntypes.Mono(conv.convertMessage(mt)))
		case spec.Service != "":
			sd := findService(fd, spec.Service)
			if sd == nil {
				return fmt.Errorf("%s: no such service %s", dep.Proto, spec.Service)
			}
			for _, m := range sd.GetMethods() {
				name := spec.As + capitalize(m.GetName())
				ctx.BindValue(name, ntypes.Mono(conv.convertMethod(m)))
			}
		}
	}
	return nil
}

func qualify(fd *desc.FileDescriptor, name string) string {
	if fd.GetPackage() == "" {
		return name
	}
	return fd.GetPackage() + "." + name
}

func findService(fd *desc.FileDescriptor, name string) *desc.ServiceDescriptor {
	for _, sd := range fd.GetServices() {
		if sd.GetName() == name {
			return sd
		}
	}
	return nil
}

type protoConverter struct {
	a     *ntypes.Arena
	named map[string]ntypes.Idx
}

// convertMessage builds an Object Scheme whose Props mirror the message's
// fields, recursively converting nested/repeated message fields.
func (c *protoConverter) convertMessage(mt *desc.MessageDescriptor) ntypes.Idx {
	if c.named == nil {
		c.named = map[string]ntypes.Idx{}
	}
	key := mt.GetFullyQualifiedName()
	if idx, ok := c.named[key]; ok {
		return idx
	}
	placeholder := c.a.NewVar()
	c.named[key] = placeholder

	elems := make([]ntypes.ObjElem, 0, len(mt.GetFields()))
	for _, f := range mt.GetFields() {
		t := c.convertField(f)
		elems = append(elems, ntypes.Prop{Name: f.GetName(), Type: t, Optional: f.AsFieldDescriptorProto().GetProto3Optional()})
	}
	idx := c.a.NewObject(elems...)
	c.named[key] = idx
	return idx
}

func (c *protoConverter) convertField(f *desc.FieldDescriptor) ntypes.Idx {
	var elem ntypes.Idx
	switch f.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_STRING, descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		elem = c.a.NewPrimitive(ntypes.String)
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		elem = c.a.NewPrimitive(ntypes.Boolean)
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		elem = c.convertMessage(f.GetMessageType())
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		elem = c.a.NewPrimitive(ntypes.String)
	default:
		elem = c.a.NewPrimitive(ntypes.Number)
	}
	if f.IsRepeated() && !f.IsMap() {
		return c.a.NewArray(elem)
	}
	return elem
}

// convertMethod builds the Function Scheme for one RPC method: request
// message in, response message out, the GrpcStatusError shape as the
// throws effect.
func (c *protoConverter) convertMethod(m *desc.MethodDescriptor) ntypes.Idx {
	reqT := c.convertMessage(m.GetInputType())
	respT := c.convertMessage(m.GetOutputType())
	throws := grpcStatusErrorShape(c.a)
	return c.a.NewFunc([]ntypes.FuncParam{{Pattern: "req", Type: reqT}}, respT, &throws, false, nil)
}
