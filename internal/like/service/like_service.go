package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AndrejsVas/movie-rating-system/internal/like/domain"
	"github.com/AndrejsVas/movie-rating-system/internal/like/store"
)

// Ошибки уровня сервиса лайков
var (
	// ErrInvalidReference означает, что одна из сторон переключения
	// (пользователь или отзыв/фильм) не существует.
	ErrInvalidReference = errors.New("invalid reviewer id or review id")
	// ErrNoLikes означает, что запрос отработал, но лайков у цели нет.
	ErrNoLikes = errors.New("no likes found")
)

// LikeService — движок переключения лайков и сервис их чтения.
// Все зависимости передаются явно через конструктор, глобального состояния нет;
// всё состояние живёт в хранилище.
type LikeService struct {
	userLikes  store.UserLikeStore
	movieLikes store.MovieLikeStore
	lookup     store.Lookup
	logger     *slog.Logger
}

// NewLikeService создает новый экземпляр LikeService.
func NewLikeService(userLikes store.UserLikeStore, movieLikes store.MovieLikeStore, lookup store.Lookup, logger *slog.Logger) *LikeService {
	return &LikeService{
		userLikes:  userLikes,
		movieLikes: movieLikes,
		lookup:     lookup,
		logger:     logger,
	}
}

// ToggleReviewLike переключает лайк пользователя на отзыве.
// Возвращает созданный лайк или (nil, nil), если лайк был снят.
// Если отзыв или пользователь не существуют — ErrInvalidReference.
func (s *LikeService) ToggleReviewLike(ctx context.Context, reviewID, userID string) (*domain.UserLike, error) {
	review, err := s.lookup.ResolveReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}
	user, err := s.lookup.ResolveUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}

	like, err := s.userLikes.Toggle(ctx, user.ID, review.ID)
	if err != nil {
		return nil, err
	}
	if like == nil {
		s.logger.InfoContext(ctx, "User disliked review",
			slog.String("userID", user.ID), slog.String("reviewID", review.ID))
		return nil, nil
	}
	s.logger.InfoContext(ctx, "User liked review",
		slog.String("userID", user.ID), slog.String("reviewID", review.ID), slog.String("likeID", like.ID))
	return like, nil
}

// ToggleMovieLike переключает лайк пользователя на фильме.
// Устроен идентично ToggleReviewLike.
func (s *LikeService) ToggleMovieLike(ctx context.Context, movieID, userID string) (*domain.MovieLike, error) {
	movie, err := s.lookup.ResolveMovie(ctx, movieID)
	if err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}
	user, err := s.lookup.ResolveUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}

	like, err := s.movieLikes.Toggle(ctx, user.ID, movie.ID)
	if err != nil {
		return nil, err
	}
	if like == nil {
		s.logger.InfoContext(ctx, "User disliked movie",
			slog.String("userID", user.ID), slog.String("movieID", movie.ID))
		return nil, nil
	}
	s.logger.InfoContext(ctx, "User liked movie",
		slog.String("userID", user.ID), slog.String("movieID", movie.ID), slog.String("likeID", like.ID))
	return like, nil
}

// GetAllUserLikes возвращает все лайки, поставленные пользователем.
// Несуществующий пользователь — store.ErrUserNotFound, пустой результат — ErrNoLikes.
func (s *LikeService) GetAllUserLikes(ctx context.Context, userID string) ([]domain.UserLike, error) {
	user, err := s.lookup.ResolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	likes, err := s.userLikes.FindAllByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(likes) == 0 {
		return nil, ErrNoLikes
	}
	return likes, nil
}

// GetAllLikesForReview возвращает все лайки на отзыве.
func (s *LikeService) GetAllLikesForReview(ctx context.Context, reviewID string) ([]domain.UserLike, error) {
	review, err := s.lookup.ResolveReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	likes, err := s.userLikes.FindAllByReview(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	if len(likes) == 0 {
		return nil, ErrNoLikes
	}
	return likes, nil
}

// GetAllLikesForMovie возвращает все лайки на фильме.
func (s *LikeService) GetAllLikesForMovie(ctx context.Context, movieID string) ([]domain.MovieLike, error) {
	movie, err := s.lookup.ResolveMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	likes, err := s.movieLikes.FindAllByMovie(ctx, movie.ID)
	if err != nil {
		return nil, err
	}
	if len(likes) == 0 {
		return nil, ErrNoLikes
	}
	return likes, nil
}
