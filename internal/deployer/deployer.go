package deployer

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/chain"
	"github.com/tokenforge/tokenforge-backend/pkg/fees"
	"github.com/tokenforge/tokenforge-backend/pkg/ipfs"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
	"github.com/tokenforge/tokenforge-backend/pkg/validator"
)

const nativeDecimals = 18

// Deployment drives one token deployment through upload, simulate, sign,
// submit and confirm. It memoizes progress (metadata URI, transaction hash)
// so a retry after a recoverable failure resumes where it stopped instead of
// uploading or submitting twice.
type Deployment struct {
	request   types.TokenDeployRequest
	breakdown fees.Breakdown
	factory   common.Address

	publisher ipfs.Publisher
	executor  *chain.Executor
	logger    logging.Logger

	mu          sync.Mutex
	state       State
	metadataURI string
	txHash      common.Hash
	lastErr     error
	observers   []Observer
}

// NewDeployment validates the request and computes the fee breakdown up
// front. The metadata fee is decided here, once: a request carrying a
// pre-resolved URI never pays it, and an upload retry never pays it again.
func NewDeployment(request types.TokenDeployRequest, schedule fees.Schedule, factory common.Address, publisher ipfs.Publisher, executor *chain.Executor, logger logging.Logger) (*Deployment, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}
	return &Deployment{
		request:     request,
		breakdown:   fees.Compute(schedule, request.HasRawMetadata()),
		factory:     factory,
		publisher:   publisher,
		executor:    executor,
		logger:      logger,
		state:       StateIdle,
		metadataURI: request.MetadataURI,
	}, nil
}

func validateRequest(request types.TokenDeployRequest) error {
	if !validator.IsValidTokenName(request.Name) {
		return apperrors.New(apperrors.CodeInvalidInput, "invalid token name")
	}
	if !validator.IsValidTokenSymbol(request.Symbol) {
		return apperrors.New(apperrors.CodeInvalidInput, "invalid token symbol")
	}
	if !validator.IsValidTokenDecimals(request.Decimals) {
		return apperrors.New(apperrors.CodeInvalidInput, "token decimals must be between 0 and 18")
	}
	if !validator.IsValidSupply(request.InitialSupply) {
		return apperrors.New(apperrors.CodeInvalidInput, "initial supply must be a non-negative decimal")
	}
	if !validator.IsValidAddress(request.AdminAddress) {
		return apperrors.New(apperrors.CodeInvalidInput, "invalid admin address")
	}
	if request.Metadata != nil && request.MetadataURI != "" {
		return apperrors.New(apperrors.CodeInvalidInput, "metadata and metadataUri are mutually exclusive")
	}
	return nil
}

// Subscribe registers an observer for state transitions.
func (d *Deployment) Subscribe(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, observer)
}

func (d *Deployment) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Deployment) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// FeeBreakdown returns the cost decided at construction time.
func (d *Deployment) FeeBreakdown() fees.Breakdown {
	return d.breakdown
}

// TxHash returns the submitted transaction hash, zero until submission.
func (d *Deployment) TxHash() common.Hash {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txHash
}

// CanRetry reports whether a failed deployment may be re-run. Upload and
// network failures left nothing on the ledger, and a timeout may still
// resolve by hash, so those resume. Wallet rejections, simulation failures
// and on-chain reverts stay terminal.
func (d *Deployment) CanRetry() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == StateError && canRetryLocked(d.lastErr)
}

func (d *Deployment) transition(to State, err error) {
	d.mu.Lock()
	from := d.state
	if !isValidTransition(from, to) {
		d.mu.Unlock()
		d.logger.Errorf("Invalid deployment transition %s -> %s", from, to)
		return
	}
	d.state = to
	d.lastErr = err
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.Unlock()

	for _, observer := range observers {
		observer(Transition{From: from, To: to, Error: err})
	}
}

func (d *Deployment) fail(err error) error {
	d.transition(StateError, err)
	return err
}

// Run drives the deployment to a terminal state. Calling Run again after a
// recoverable failure resumes the attempt: a published metadata URI is kept,
// and a transaction whose hash is known is never re-submitted, only re-polled.
func (d *Deployment) Run(ctx context.Context) (*types.DeploymentResult, error) {
	d.mu.Lock()
	switch d.state {
	case StateSuccess:
		d.mu.Unlock()
		return nil, apperrors.New(apperrors.CodeInvalidInput, "deployment already completed")
	case StateError:
		if !canRetryLocked(d.lastErr) {
			d.mu.Unlock()
			return nil, d.lastErr
		}
	}
	needsUpload := d.request.HasRawMetadata() && d.metadataURI == ""
	hash := d.txHash
	d.mu.Unlock()

	if hash != (common.Hash{}) {
		// Submitted before the previous attempt failed: only the outcome
		// is unknown, so go straight back to polling.
		d.transition(StateDeploying, nil)
		return d.confirm(ctx, hash)
	}

	if needsUpload {
		if err := d.upload(ctx); err != nil {
			return nil, d.fail(err)
		}
	}

	d.transition(StateDeploying, nil)
	hash, err := d.submit(ctx)
	if err != nil {
		return nil, d.fail(err)
	}
	return d.confirm(ctx, hash)
}

func (d *Deployment) upload(ctx context.Context) error {
	d.transition(StateUploading, nil)
	uri, err := d.publisher.PublishMetadata(ctx, *d.request.Metadata)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.metadataURI = uri
	d.mu.Unlock()
	d.logger.Infof("Token metadata published: %s", uri)
	return nil
}

func (d *Deployment) submit(ctx context.Context) (common.Hash, error) {
	supply, err := chain.ToBaseUnits(d.request.InitialSupply, d.request.Decimals)
	if err != nil {
		return common.Hash{}, err
	}

	d.mu.Lock()
	uri := d.metadataURI
	d.mu.Unlock()

	data, err := chain.PackDeployToken(d.request.Name, d.request.Symbol, uint8(d.request.Decimals), supply, common.HexToAddress(d.request.AdminAddress), uri)
	if err != nil {
		return common.Hash{}, apperrors.Wrap(err, apperrors.CodeInvalidInput, "failed to encode deploy call")
	}

	value, err := chain.ToBaseUnits(d.breakdown.TotalFee.String(), nativeDecimals)
	if err != nil {
		return common.Hash{}, err
	}

	from := d.executor.Signer().Address()
	gasLimit, err := d.executor.Simulate(ctx, ethereum.CallMsg{
		From:  from,
		To:    &d.factory,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return common.Hash{}, err
	}

	tx, err := d.executor.BuildTx(ctx, d.factory, value, gasLimit, data)
	if err != nil {
		return common.Hash{}, err
	}

	signed, err := d.executor.Sign(ctx, tx)
	if err != nil {
		return common.Hash{}, err
	}

	hash, err := d.executor.Submit(ctx, signed)
	if err != nil {
		return common.Hash{}, err
	}

	d.mu.Lock()
	d.txHash = hash
	d.mu.Unlock()
	return hash, nil
}

func (d *Deployment) confirm(ctx context.Context, hash common.Hash) (*types.DeploymentResult, error) {
	deadline := time.Now().Add(d.executor.ConfirmTimeout())
	status, err := d.executor.PollStatus(ctx, hash, deadline)
	if err != nil {
		if apperrors.IsUnknownOutcome(err) {
			// The transaction may have confirmed while the poller timed
			// out. One extra look by hash before giving up.
			if status, checkErr := d.executor.CheckStatus(ctx, hash); checkErr == nil && status != chain.TxStatusPending {
				return d.resolve(ctx, hash, status)
			}
		}
		return nil, d.fail(err)
	}
	return d.resolve(ctx, hash, status)
}

func (d *Deployment) resolve(ctx context.Context, hash common.Hash, status chain.TxStatus) (*types.DeploymentResult, error) {
	if status == chain.TxStatusFailed {
		return nil, d.fail(apperrors.Newf(apperrors.CodeTransactionFailed, "deploy transaction %s reverted", hash.Hex()))
	}

	receipt, err := d.executor.Receipt(ctx, hash)
	if err != nil {
		return nil, d.fail(err)
	}
	tokenAddress, err := chain.TokenAddressFromReceipt(receipt)
	if err != nil {
		return nil, d.fail(apperrors.Wrap(err, apperrors.CodeContractError, "deploy confirmed but no token address in receipt"))
	}

	result := &types.DeploymentResult{
		TokenAddress:    tokenAddress.Hex(),
		TransactionHash: hash.Hex(),
		TotalFee:        d.breakdown.TotalFee.String(),
		Timestamp:       time.Now().Unix(),
	}
	d.transition(StateSuccess, nil)
	d.logger.Infof("Token %s deployed at %s (tx %s)", d.request.Symbol, result.TokenAddress, result.TransactionHash)
	return result, nil
}

// MetadataURI returns the published URI, empty until upload completes.
func (d *Deployment) MetadataURI() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.metadataURI
}

func canRetryLocked(err error) bool {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeIPFSUploadFailed, apperrors.CodeNetworkError, apperrors.CodeTimeoutError:
		return true
	}
	return false
}
