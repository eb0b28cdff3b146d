package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/vovakirdan/boko-runner/internal/profile"
)

type RedisLeaderboardTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    redis.UniversalClient
	mirror    *RedisLeaderboard
	ctx       context.Context
}

func (s *RedisLeaderboardTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	client, err := NewRedisClient(mr.Addr())
	s.Require().NoError(err)
	s.client = client

	mirror, err := NewRedisLeaderboard(&RedisConfig{Client: client})
	s.Require().NoError(err)
	s.mirror = mirror

	s.ctx = context.Background()
}

func (s *RedisLeaderboardTestSuite) TearDownTest() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *RedisLeaderboardTestSuite) TestNewRedisLeaderboard() {
	testCases := []struct {
		name    string
		config  *RedisConfig
		wantErr bool
		errMsg  string
	}{
		{
			name:   "success with valid config",
			config: &RedisConfig{Client: s.client},
		},
		{
			name:    "error with nil config",
			config:  nil,
			wantErr: true,
			errMsg:  "config cannot be nil",
		},
		{
			name:    "error with nil client",
			config:  &RedisConfig{},
			wantErr: true,
			errMsg:  "client cannot be nil",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			mirror, err := NewRedisLeaderboard(tc.config)

			if tc.wantErr {
				s.Error(err)
				s.Contains(err.Error(), tc.errMsg)
				s.Nil(mirror)
			} else {
				s.NoError(err)
				s.NotNil(mirror)
			}
		})
	}
}

func (s *RedisLeaderboardTestSuite) TestNewRedisClientRequiresAddr() {
	_, err := NewRedisClient("")
	s.Error(err)
}

func (s *RedisLeaderboardTestSuite) TestPublishAndTop() {
	s.Require().NoError(s.mirror.PublishLeaderboard(s.ctx, profile.Hard, []int{10, 40, 25}))

	s.True(s.miniRedis.Exists("boko-runner:leaderboard:hard"))
	s.False(s.miniRedis.Exists("boko-runner:leaderboard:easy"))

	top, err := s.mirror.Top(s.ctx, profile.Hard, 10)
	s.Require().NoError(err)
	s.Equal([]int{40, 25, 10}, top)

	top, err = s.mirror.Top(s.ctx, profile.Hard, 2)
	s.Require().NoError(err)
	s.Equal([]int{40, 25}, top)
}

func (s *RedisLeaderboardTestSuite) TestPublishReplaces() {
	s.Require().NoError(s.mirror.PublishLeaderboard(s.ctx, profile.Easy, []int{1, 2, 3}))
	s.Require().NoError(s.mirror.PublishLeaderboard(s.ctx, profile.Easy, []int{2, 3, 9}))

	top, err := s.mirror.Top(s.ctx, profile.Easy, 0)
	s.Require().NoError(err)
	s.Equal([]int{9, 3, 2}, top)

	// An empty board removes the set
	s.Require().NoError(s.mirror.PublishLeaderboard(s.ctx, profile.Easy, nil))
	s.False(s.miniRedis.Exists("boko-runner:leaderboard:easy"))

	top, err = s.mirror.Top(s.ctx, profile.Easy, 0)
	s.Require().NoError(err)
	s.Empty(top)
}

func (s *RedisLeaderboardTestSuite) TestPublishSkipsZero() {
	s.Require().NoError(s.mirror.PublishLeaderboard(s.ctx, profile.Hard, []int{0, 5}))

	members, err := s.miniRedis.ZMembers("boko-runner:leaderboard:hard")
	s.Require().NoError(err)
	s.Equal([]string{"5"}, members)
}

func (s *RedisLeaderboardTestSuite) TestCustomPrefixAndClear() {
	mirror, err := NewRedisLeaderboard(&RedisConfig{Client: s.client, KeyPrefix: "test:"})
	s.Require().NoError(err)

	s.Require().NoError(mirror.PublishLeaderboard(s.ctx, profile.Easy, []int{7}))
	s.Require().NoError(mirror.PublishLeaderboard(s.ctx, profile.Hard, []int{8}))
	s.True(s.miniRedis.Exists("test:easy"))

	s.Require().NoError(mirror.Clear(s.ctx))
	s.False(s.miniRedis.Exists("test:easy"))
	s.False(s.miniRedis.Exists("test:hard"))
}

func (s *RedisLeaderboardTestSuite) TestProfileSaveMirrors() {
	store, err := NewXMLFile(s.T().TempDir()+"/runner.xml", nil)
	s.Require().NoError(err)

	p, err := profile.Open(s.ctx, profile.Options{Store: store, Mirror: s.mirror})
	s.Require().NoError(err)

	p.RecordGame(profile.GameRecord{Difficulty: profile.Easy, Score: 120})
	p.RecordGame(profile.GameRecord{Difficulty: profile.Easy, Score: 300})
	s.Require().NoError(p.Save(s.ctx))

	top, err := s.mirror.Top(s.ctx, profile.Easy, 10)
	s.Require().NoError(err)
	s.Equal([]int{300, 120}, top)
}

func (s *RedisLeaderboardTestSuite) TestServerDown() {
	s.miniRedis.Close()

	err := s.mirror.Ping(s.ctx)
	s.Error(err)
	s.Error(s.mirror.PublishLeaderboard(s.ctx, profile.Hard, []int{1}))
}

func TestRedisLeaderboardSuite(t *testing.T) {
	suite.Run(t, new(RedisLeaderboardTestSuite))
}
