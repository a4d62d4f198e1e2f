package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/finlab/mongolab/internal/engine"
	"github.com/finlab/mongolab/pkg/logger"
)

// Service names as declared in container/mongo.yml, and the fixed access
// URLs reported once they are up. The database is always reported first.
const (
	DatabaseService = "mongo"
	AdminService    = "mongo-express"

	databaseURL = "mongodb://localhost:27017"
	adminURL    = "http://localhost:8081"
)

// Launcher drives the environment start/stop flow: engine probe, declaration
// lookup, compose up/down, and a best-effort health report.
type Launcher struct {
	engine *engine.Engine
	out    io.Writer

	// SettleDelay is how long to wait before polling service status.
	// Tests set it to zero.
	SettleDelay time.Duration
}

func New(e *engine.Engine, out io.Writer) *Launcher {
	return &Launcher{engine: e, out: out, SettleDelay: 5 * time.Second}
}

// Up brings the declared services up. The flow is strictly ordered: an
// unavailable engine aborts before the declaration is even looked up, a
// missing declaration aborts before anything is started, and a failed start
// aborts before health reporting. Health reporting itself never fails the
// launch.
func (l *Launcher) Up(ctx context.Context, baseDir, declaration string) error {
	fmt.Fprintln(l.out, "🔄 Initializing MongoDB environment...")

	if !l.engine.Available(ctx) {
		return fmt.Errorf("container engine is not running or not installed; start it and try again")
	}

	path, err := locateDeclaration(baseDir, declaration)
	if err != nil {
		return err
	}
	logger.Infof("using service declaration at %s", path)

	fmt.Fprintln(l.out, "🚀 Starting MongoDB containers...")
	if err := l.engine.ComposeUp(ctx, path); err != nil {
		return fmt.Errorf("starting containers: %w", err)
	}
	fmt.Fprintln(l.out, "✅ Containers started successfully!")

	l.reportHealth(ctx)

	fmt.Fprintln(l.out, "✨ MongoDB environment is ready!")
	fmt.Fprintln(l.out, "→ Use the MongoDB connection string from your .env file to connect")
	fmt.Fprintln(l.out, "→ Access Mongo Express at "+adminURL)
	return nil
}

// Down stops the declared services. Same fatal tier as Up: a missing
// declaration or a failed engine invocation aborts.
func (l *Launcher) Down(ctx context.Context, baseDir, declaration string) error {
	path, err := locateDeclaration(baseDir, declaration)
	if err != nil {
		return err
	}

	fmt.Fprintln(l.out, "🛑 Stopping MongoDB containers...")
	if err := l.engine.ComposeDown(ctx, path); err != nil {
		return fmt.Errorf("stopping containers: %w", err)
	}
	fmt.Fprintln(l.out, "✅ Containers stopped.")
	return nil
}

// locateDeclaration resolves the service declaration under baseDir. There is
// no fallback search: absent means fatal.
func locateDeclaration(baseDir, declaration string) (string, error) {
	path := filepath.Join(baseDir, declaration)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("service declaration not found at %s", path)
	}
	return path, nil
}

// reportHealth waits for the services to settle, then prints one line per
// service. Diagnostic only: errors are printed and swallowed, and the result
// never gates the launch.
func (l *Launcher) reportHealth(ctx context.Context) {
	fmt.Fprintln(l.out, "⏳ Waiting for containers to initialize...")
	time.Sleep(l.SettleDelay)

	l.reportService(ctx, DatabaseService, "MongoDB", "Available at: "+databaseURL)
	l.reportService(ctx, AdminService, "Mongo Express", "Web interface: "+adminURL)
}

func (l *Launcher) reportService(ctx context.Context, service, label, hint string) {
	status, err := l.engine.ServiceStatus(ctx, service)
	if err != nil {
		logger.Warnf("status query for %s failed: %v", service, err)
		fmt.Fprintf(l.out, "❌ Error checking %s status: %v\n", label, err)
		return
	}
	logger.Debugf("%s status: %s", service, strings.TrimSpace(status))

	// coarse on purpose: the engine's richer health fields are ignored and
	// anything that does not say "running" counts as down
	if strings.Contains(strings.ToLower(status), "running") {
		fmt.Fprintf(l.out, "✅ %s is running!\n", label)
		fmt.Fprintf(l.out, "   → %s\n", hint)
		return
	}
	fmt.Fprintf(l.out, "❌ %s container is not running properly\n", label)
}
