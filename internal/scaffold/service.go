package scaffold

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/vvka-141/appgen/internal/spec"
)

var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

type operation struct {
	name     string
	method   string
	path     string
	request  string
	response string
}

type service struct {
	name string
	ops  []operation
}

// collectServices groups operations tagged with x-service-operation
// ("Service.operation") by service, in document order.
func (g *generator) collectServices() []*service {
	var services []*service
	byName := make(map[string]*service)

	for _, p := range g.doc.Root.Get("paths").Pairs() {
		for _, method := range httpMethods {
			op := p.Value.Get(method)
			tag := op.String("x-service-operation", "")
			svcName, opName, ok := strings.Cut(tag, ".")
			if !ok || svcName == "" || opName == "" {
				continue
			}

			svc, exists := byName[svcName]
			if !exists {
				svc = &service{name: svcName}
				byName[svcName] = svc
				services = append(services, svc)
			}
			svc.ops = append(svc.ops, operation{
				name:     opName,
				method:   strings.ToUpper(method),
				path:     p.Key,
				request:  op.At("/requestBody/content/application~1json/schema").RefName(),
				response: responseRef(op),
			})
		}
	}
	return services
}

func responseRef(op spec.Node) string {
	for _, code := range []string{"201", "200"} {
		if ref := op.At("/responses/" + code + "/content/application~1json/schema").RefName(); ref != "" {
			return ref
		}
	}
	return ""
}

// serviceFile renders one interface per service.
func (g *generator) serviceFile() (*jen.File, bool) {
	services := g.collectServices()
	if len(services) == 0 {
		return nil, false
	}

	f := g.newFile()
	for _, svc := range services {
		name := GoName(svc.name)
		if !strings.HasSuffix(name, "Service") {
			name += "Service"
		}
		f.Commentf("%s is implemented by the application layer.", name)
		f.Type().Id(name).InterfaceFunc(func(grp *jen.Group) {
			for _, op := range svc.ops {
				params := []jen.Code{jen.Id("ctx").Qual("context", "Context")}
				if op.request != "" {
					params = append(params, jen.Id("req").Op("*").Id(GoName(op.request)))
				}

				grp.Commentf("%s handles %s %s.", GoName(op.name), op.method, op.path)
				method := grp.Id(GoName(op.name)).Params(params...)
				if op.response != "" {
					method.Params(jen.Op("*").Id(GoName(op.response)), jen.Error())
				} else {
					method.Error()
				}
			}
		})
		f.Line()
	}
	return f, true
}
