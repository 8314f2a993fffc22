package application

import (
	"context"
	"regexp"
	"time"

	"github.com/wyfcoding/retailbackend/internal/account/domain"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

// defaultStoreTimeout 账户存储调用的统一超时，超时按可重试失败上报
const defaultStoreTimeout = 5 * time.Second

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SignUpCommand 注册命令
type SignUpCommand struct {
	Name     string
	Email    string
	Password string
}

// LoginCommand 登录命令
type LoginCommand struct {
	Email    string
	Password string
}

// LoginResult 登录结果：令牌加脱敏用户
type LoginResult struct {
	Token     string
	ExpiresAt int64
	User      *domain.User
}

// AccountCommandService 账户命令服务：注册、登录、收货地址
type AccountCommandService struct {
	repo         domain.UserRepository
	hasher       domain.PasswordHasher
	tokens       domain.TokenIssuer
	publisher    domain.EventPublisher
	storeTimeout time.Duration
}

// NewAccountCommandService 创建账户命令服务实例
func NewAccountCommandService(
	repo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	publisher domain.EventPublisher,
) *AccountCommandService {
	return &AccountCommandService{
		repo:         repo,
		hasher:       hasher,
		tokens:       tokens,
		publisher:    publisher,
		storeTimeout: defaultStoreTimeout,
	}
}

// SignUp 处理用户注册
func (s *AccountCommandService) SignUp(ctx context.Context, cmd SignUpCommand) (*domain.User, error) {
	if cmd.Name == "" || cmd.Email == "" || cmd.Password == "" {
		return nil, errs.New(errs.KindInvalidArgument, "all fields are required")
	}
	if !emailPattern.MatchString(cmd.Email) {
		return nil, errs.New(errs.KindInvalidArgument, "please enter a valid email address")
	}
	if len(cmd.Password) <= 6 {
		return nil, errs.New(errs.KindInvalidArgument, "password must be longer than 6 characters")
	}

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	existing, err := s.repo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, storeErr("lookup user", err)
	}
	if existing != nil {
		return nil, errs.New(errs.KindInvalidArgument, "user with this email already exists")
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "hash password", err)
	}

	user := &domain.User{
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, storeErr("save user", err)
	}

	if s.publisher != nil {
		event := domain.UserRegisteredEvent{
			UserID:    user.ID,
			Email:     user.Email,
			Role:      user.Role,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.UserRegisteredEventType, user.Email, event)
	}
	return user, nil
}

// Login 处理用户登录并签发令牌
func (s *AccountCommandService) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, errs.New(errs.KindInvalidArgument, "email and password are required")
	}

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	user, err := s.repo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, storeErr("lookup user", err)
	}
	if user == nil {
		return nil, errs.New(errs.KindInvalidArgument, "user with this email does not exist")
	}
	if err := s.hasher.Compare(user.PasswordHash, cmd.Password); err != nil {
		return nil, errs.New(errs.KindInvalidArgument, "incorrect password")
	}

	token, expiresAt, err := s.tokens.Issue(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "issue token", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// GetUser 读取当前用户
func (s *AccountCommandService) GetUser(ctx context.Context, userID uint) (*domain.User, error) {
	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr("lookup user", err)
	}
	if user == nil {
		return nil, errs.New(errs.KindNotFound, "user not found")
	}
	return user, nil
}

// SaveAddress 覆盖收货地址
func (s *AccountCommandService) SaveAddress(ctx context.Context, userID uint, address string) (*domain.User, error) {
	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr("lookup user", err)
	}
	if user == nil {
		return nil, errs.New(errs.KindNotFound, "user not found")
	}
	if err := s.repo.UpdateAddress(ctx, userID, address); err != nil {
		return nil, storeErr("save address", err)
	}
	user.Address = address
	return user, nil
}

func (s *AccountCommandService) withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// storeErr 区分存储超时与一般失败，超时对客户端可重试
func storeErr(op string, err error) error {
	if errs.IsTimeout(err) {
		return errs.Wrap(errs.KindTimeout, op+" timed out", err)
	}
	return errs.Wrap(errs.KindInternal, op, err)
}
