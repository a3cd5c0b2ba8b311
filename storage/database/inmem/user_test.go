package inmemdb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davalosk/ezu/core/courseinfo"
	"github.com/davalosk/ezu/core/user"
	"github.com/davalosk/ezu/storage/database/inmem"
	"github.com/davalosk/ezu/testutil"
)

func TestUserRepository_UpdateUser(t *testing.T) {
	db, _ := inmemdb.Open()
	repo := inmemdb.NewUserRepository(db)
	ctx := context.Background()

	awe := testutil.CreateUser(t, repo, "awe", "awe@test.cd", "", true)
	bob := testutil.CreateUser(t, repo, "bob", "bob@test.cd", "", true)

	awe.IsActive = false
	updated, err := repo.UpdateUser(ctx, awe)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	bob.Email = awe.Email
	_, err = repo.UpdateUser(ctx, bob)
	assert.Equal(t, user.ErrEmailExists, err)

	_, err = repo.UpdateUser(ctx, user.User{ID: "ghost", Username: "ghost"})
	assert.Equal(t, user.ErrNotFound, err)
}

func TestUserRepository_UpdateOrCreateUser(t *testing.T) {
	db, _ := inmemdb.Open()
	repo := inmemdb.NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.UpdateOrCreateUser(ctx, user.User{Username: "awe"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	created.Email = "awe@test.cd"
	updated, err := repo.UpdateOrCreateUser(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	users, err := repo.QueryUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_DeleteUsersByID(t *testing.T) {
	db, _ := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)
	repo := inmemdb.NewCourseInfoRepository(db)
	ctx := context.Background()

	fx := testutil.CreateFixtures(t, usrRepo, repo)
	linked := courseinfo.Person{FirstName: "Kevin", LastName: "Trainor"}
	linked.UserID.SetValid(fx.User.ID)
	inst, err := repo.CreateInstructor(ctx, courseinfo.Instructor{Person: linked})
	require.NoError(t, err)
	stud, err := repo.CreateStudent(ctx, courseinfo.Student{Person: linked})
	require.NoError(t, err)

	n, err := usrRepo.DeleteUsersByID(ctx, fx.User.ID, "ghost")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	inst, err = repo.GetInstructor(ctx, inst.ID)
	require.NoError(t, err)
	assert.False(t, inst.UserID.Valid)
	stud, err = repo.GetStudent(ctx, stud.ID)
	require.NoError(t, err)
	assert.False(t, stud.UserID.Valid)
	assert.Equal(t, "Trainor, Kevin", stud.String())
}
