// Package launch plans and supervises a single package-manager install run:
// detection, entrypoint resolution and environment composition up front, then
// one child process whose outcome becomes this process's exit status.
package launch

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vertti/pmlaunch/pkg/childenv"
	"github.com/vertti/pmlaunch/pkg/entrypoint"
	"github.com/vertti/pmlaunch/pkg/manager"
	"github.com/vertti/pmlaunch/pkg/redact"
	"github.com/vertti/pmlaunch/pkg/status"
)

// Request is the immutable description of one invocation, derived from the
// command line at process start.
type Request struct {
	Manager      string // explicit manager name; empty means detect
	Debug        bool   // verbose child arguments and stdout relay
	CleanInstall bool   // clean policy instead of inject-credentials
}

// Plan is the resolved, ready-to-execute launch description. It is built
// once; a run either gets a complete plan or no plan at all.
type Plan struct {
	Runtime    string            // absolute path to the node executable
	Entrypoint string            // absolute path to the manager's CLI script
	Args       []string          // install arguments, fixed per manager
	Env        map[string]string // finalized child environment
}

// Planner runs the planning stages in order, failing fast. No child process
// is ever created during planning.
type Planner struct {
	Detector *manager.Detector
	Resolver *entrypoint.Resolver
	Composer *childenv.Composer
	Opener   childenv.FileOpener // certificate fingerprint in debug details
	Log      *log.Logger
}

// Build produces the plan and the redactor seeded with any credentials the
// composition captured. The returned steps describe each stage for
// reporting; on failure the last step carries the error and the plan is nil.
func (p *Planner) Build(req Request) (*Plan, *redact.Redactor, []status.Result, error) {
	var steps []status.Result

	id, source, err := p.Detector.Detect(req.Manager)
	if err != nil {
		res := status.Result{Name: "manager: " + req.Manager}
		steps = append(steps, res.FailErr(err))
		return nil, nil, steps, err
	}
	detectRes := status.Result{Name: "manager: " + id.String()}
	detectRes.AddDetailf("source: %s", source)
	steps = append(steps, detectRes.Pass())
	p.debug("manager detected", "manager", id, "source", source)

	runtimePath, err := p.Resolver.Runtime()
	if err != nil {
		res := status.Result{Name: "runtime: node"}
		steps = append(steps, res.FailErr(err))
		return nil, nil, steps, err
	}
	runtimeRes := status.Result{Name: "runtime: node"}
	runtimeRes.AddDetailf("path: %s", runtimePath)
	steps = append(steps, runtimeRes.Pass())

	entryPath, err := p.Resolver.Resolve(id)
	if err != nil {
		res := status.Result{Name: "entrypoint: " + id.String()}
		steps = append(steps, res.FailErr(err))
		return nil, nil, steps, err
	}
	entryRes := status.Result{Name: "entrypoint: " + id.String()}
	entryRes.AddDetailf("path: %s", entryPath)
	steps = append(steps, entryRes.Pass())

	mode := childenv.ModeInject
	if req.CleanInstall {
		mode = childenv.ModeClean
	}
	env, secrets, err := p.Composer.Compose(mode)
	if err != nil {
		res := status.Result{Name: "environment: " + string(mode)}
		steps = append(steps, res.FailErr(err))
		return nil, nil, steps, err
	}
	envRes := status.Result{Name: "environment: " + string(mode)}
	p.describeEnv(&envRes, env, mode, req.Debug)
	steps = append(steps, envRes.Pass())

	plan := &Plan{
		Runtime:    runtimePath,
		Entrypoint: entryPath,
		Args:       id.InstallArgs(req.Debug),
		Env:        env,
	}
	return plan, redact.New(secrets.Values()...), steps, nil
}

// describeEnv adds human-readable composition details. Variable values are
// never included; only names, the certificate path and the registry host.
func (p *Planner) describeEnv(res *status.Result, env map[string]string, mode childenv.Mode, debug bool) {
	if mode == childenv.ModeClean {
		res.AddDetailf("removed: %s, %s", childenv.CertPathVar, childenv.MirrorVar)
		return
	}
	certPath := env[childenv.CertPathVar]
	res.AddDetailf("certificate: %s", certPath)
	res.AddDetailf("mirror host: %s", p.Composer.Config.RegistryHost)
	if debug && p.Opener != nil {
		if fp, err := childenv.Fingerprint(p.Opener, certPath); err == nil {
			res.AddDetailf("certificate fingerprint: %s", fp)
		}
	}
}

func (p *Planner) debug(msg string, keyvals ...interface{}) {
	if p.Log != nil {
		p.Log.Debug(msg, keyvals...)
	}
}

// String renders the spawn command line without the environment.
func (p *Plan) String() string {
	return fmt.Sprintf("%s %s %v", p.Runtime, p.Entrypoint, p.Args)
}
