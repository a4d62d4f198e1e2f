package client

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/finlab/mongolab/internal/config"
	"github.com/finlab/mongolab/internal/database"
	"github.com/finlab/mongolab/internal/transactions"
	"github.com/finlab/mongolab/pkg/logger"
)

// Operation selects which body runs between connect/verify and close.
type Operation string

const (
	OperationWrite Operation = "write"
	OperationRead  Operation = "read"
)

// store is the slice of the repository the operation bodies need.
type store interface {
	Insert(ctx context.Context, doc bson.M) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error)
	FindAll(ctx context.Context) ([]bson.M, error)
	FindMatching(ctx context.Context, filter bson.M) ([]bson.M, error)
}

// connection is the slice of an open client handle the lifecycle needs.
// Faked in tests so every release path can be driven.
type connection interface {
	Ping(ctx context.Context) error
	Transactions(database, collection string) store
	Disconnect(ctx context.Context) error
}

// mongoConnection adapts a driver client to the connection interface.
type mongoConnection struct {
	client *mongo.Client
}

func (m *mongoConnection) Ping(ctx context.Context) error {
	return database.Ping(ctx, m.client)
}

func (m *mongoConnection) Transactions(db, collection string) store {
	return transactions.NewRepository(m.client.Database(db).Collection(collection))
}

func (m *mongoConnection) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Client runs one document operation through the full lifecycle:
// connect, verify with a ping, operate, and release the handle exactly once.
type Client struct {
	cfg     config.MongoConfig
	out     io.Writer
	connect func(ctx context.Context) (connection, error)
}

func New(cfg config.MongoConfig, out io.Writer) *Client {
	c := &Client{cfg: cfg, out: out}
	c.connect = c.dial
	return c
}

func (c *Client) dial(ctx context.Context) (connection, error) {
	client, err := database.Connect(ctx, c.cfg.URI(), c.cfg.ServerSelectionTimeout)
	if err != nil {
		return nil, err
	}
	return &mongoConnection{client: client}, nil
}

// Run executes op. Any error coming back is a *Failure carrying its
// classification; its user-facing message has already been printed, before
// the deferred close line so the error always reads first. The connection
// handle, once opened, is released on every return path.
func (c *Client) Run(ctx context.Context, op Operation) error {
	handle, err := c.connect(ctx)
	if err != nil {
		return c.fail(err)
	}
	defer func() {
		if derr := handle.Disconnect(ctx); derr != nil {
			logger.Errorf("disconnect: %v", derr)
			return
		}
		fmt.Fprintln(c.out, "\n✅ MongoDB connection closed.")
	}()

	if err := handle.Ping(ctx); err != nil {
		return c.fail(err)
	}
	fmt.Fprintln(c.out, "✅ Connected to MongoDB!")

	repo := handle.Transactions(c.cfg.Database, c.cfg.Collection)
	if err := c.operate(ctx, repo, op); err != nil {
		return c.fail(err)
	}
	return nil
}

// fail classifies err, prints the message for its category and hands the
// failure back to the caller.
func (c *Client) fail(err error) *Failure {
	f := classify(err)
	switch f.Kind {
	case FailureConnection:
		fmt.Fprintf(c.out, "❌ Error connecting to MongoDB: %v\n", f.Err)
		fmt.Fprintln(c.out, "Please check if MongoDB server is running and accessible.")
	case FailureOperation:
		fmt.Fprintf(c.out, "❌ Authentication error: %v\n", f.Err)
		fmt.Fprintln(c.out, "Please check your MongoDB credentials in the .env file.")
	default:
		fmt.Fprintf(c.out, "❌ Unexpected error: %v\n", f.Err)
	}
	return f
}

func (c *Client) operate(ctx context.Context, repo store, op Operation) error {
	switch op {
	case OperationWrite:
		return c.write(ctx, repo)
	case OperationRead:
		return c.read(ctx, repo)
	}
	return fmt.Errorf("unknown operation %q", op)
}

// sampleDocument is the fixed document the write path inserts.
func sampleDocument() bson.M {
	return bson.M{
		"nome":      "Exemplo",
		"valor":     123,
		"descricao": "Exemplo de inserção de documento",
	}
}

// write inserts the fixed document, re-fetches it by its generated id and
// prints every field. Single node, default write concern: the re-read
// observes the insert immediately.
func (c *Client) write(ctx context.Context, repo store) error {
	id, err := repo.Insert(ctx, sampleDocument())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "✅ Document inserted with ID: %s\n", id.Hex())

	stored, err := repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "\nInserted document:")
	printFields(c.out, stored, "  ")
	return nil
}

// read prints every document in the collection, then every document matching
// the fixed equality filter. Empty results report themselves and succeed.
func (c *Client) read(ctx context.Context, repo store) error {
	docs, err := repo.FindAll(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "\n📄 All documents in collection:")
	c.printDocuments(docs, "Document", "No documents found in the collection.")

	filter := bson.M{"nome": "Exemplo"}
	matches, err := repo.FindMatching(ctx, filter)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "\n🔍 Documents matching query: %v\n", filter)
	c.printDocuments(matches, "Result", "No documents found matching the query.")
	return nil
}

func (c *Client) printDocuments(docs []bson.M, label, emptyMsg string) {
	if len(docs) == 0 {
		fmt.Fprintf(c.out, "  %s\n", emptyMsg)
		return
	}
	for i, doc := range docs {
		fmt.Fprintf(c.out, "\n  %s %d:\n", label, i+1)
		printFields(c.out, doc, "    ")
	}
}

// printFields writes one "key: value" line per field. Keys are sorted so the
// output is stable; bson.M carries no field order.
func printFields(w io.Writer, doc bson.M, indent string) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s%s: %v\n", indent, k, doc[k])
	}
}
